// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess           = "success"
	KeyInternalError     = "error.internal"
	KeyAccessDenied      = "access.denied"
	KeyValidationInvalid = "validation.invalid"
	KeyRequestTooLarge   = "request.too_large"
	KeyRouteNotFound     = "route.not_found"

	// Catalog
	KeyProductNotFound       = "product.not_found"
	KeyProductPurchased      = "product.purchased"
	KeyReviewAdded           = "review.added"
	KeyReviewInvalid         = "review.invalid"
	KeyReviewPurchaseNeeded  = "review.purchase_required"
	KeyCartUpdated           = "cart.updated"
	KeySessionRoleUpdated    = "session.role_updated"
	KeyCategoryNotRecognized = "category.not_recognized"
	KeyRoleInvalid           = "role.invalid"

	// User directory
	KeyUserNotFound        = "user.not_found"
	KeyUserInvalid         = "user.invalid"
	KeyUserCreated         = "user.created"
	KeyUserRoleUpdated     = "user.role_updated"
	KeyUserDeleted         = "user.deleted"
	KeyUserAvatarStaged    = "user.avatar_staged"
	KeyUserAvatarUpdated   = "user.avatar_updated"
	KeyUserAvatarDiscarded = "user.avatar_discarded"
	KeyUserAvatarNotStaged = "user.avatar_not_staged"
	KeyDirectoryFull       = "user.directory_full"

	// Files
	KeyFileUploadFailed = "file.upload_failed"
	KeyFileTooLarge     = "file.too_large"
	KeyFileNotImage     = "file.not_image"
	KeyFileTypeRejected = "file.type_rejected"

	// Orders
	KeyOrderNotFound = "order.not_found"

	// Seller
	KeyDraftUpdated         = "draft.updated"
	KeyDraftTitleRequired   = "draft.title_required"
	KeyDraftImageNotFound   = "draft.image_not_found"
	KeyDraftPriceInvalid    = "draft.price_invalid"
	KeyDraftDescribeFailed  = "draft.describe_failed"
	KeyOnboardingStarted    = "onboarding.started"
	KeyAssistantUnavailable = "assistant.unavailable"
)
