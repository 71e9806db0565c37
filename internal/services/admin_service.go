// internal/services/admin_service.go
package services

import (
	"github.com/javajoker/marketflow-backend/internal/models"
)

type AdminService struct {
	stats []models.AdminStat
}

type AdminDashboardStats struct {
	Stats       []models.AdminStat     `json:"stats"`
	TotalUsers  int                    `json:"total_users"`
	UsersByRole map[models.AppRole]int `json:"users_by_role"`
}

func NewAdminService(stats []models.AdminStat) *AdminService {
	return &AdminService{stats: stats}
}

// GetDashboardStats combines the platform figures with live counts from the
// workspace's user directory.
func (s *AdminService) GetDashboardStats(directory *UserDirectory) AdminDashboardStats {
	stats := make([]models.AdminStat, len(s.stats))
	copy(stats, s.stats)

	byRole := map[models.AppRole]int{
		models.RoleBuyer:  0,
		models.RoleSeller: 0,
		models.RoleAdmin:  0,
	}
	users := directory.List()
	for _, u := range users {
		byRole[u.Role]++
	}

	return AdminDashboardStats{
		Stats:       stats,
		TotalUsers:  len(users),
		UsersByRole: byRole,
	}
}
