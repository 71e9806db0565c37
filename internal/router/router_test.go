package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/marketflow-backend/internal/config"
	"github.com/javajoker/marketflow-backend/internal/i18n"
	"github.com/javajoker/marketflow-backend/internal/services"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func testConfig(distPath string) *config.Config {
	return &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{Port: "0", MaxBodyBytes: 1 << 20},
		OpenAI:      config.OpenAIConfig{Model: "gpt-4.1-mini", Timeout: 5},
		Session: config.SessionConfig{
			Secret:     "router-test-session-secret",
			CookieName: "mf_test",
			IdleTTL:    60,
		},
		CORS:     config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		Static:   config.StaticConfig{DistPath: distPath},
		Frontend: config.FrontendConfig{BaseURL: "http://localhost:3000"},
		I18n:     config.I18nConfig{DefaultLocale: "en"},
	}
}

type RouterTestSuite struct {
	suite.Suite
	cfg      *config.Config
	router   *gin.Engine
	shutdown func()
	cookies  map[string]*http.Cookie
}

func (suite *RouterTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(i18n.Initialize("en"))

	dist := suite.T().TempDir()
	suite.Require().NoError(os.WriteFile(filepath.Join(dist, "index.html"), []byte("<html>marketflow</html>"), 0o644))
	suite.Require().NoError(os.MkdirAll(filepath.Join(dist, "assets"), 0o755))
	suite.Require().NoError(os.WriteFile(filepath.Join(dist, "assets", "app.js"), []byte("console.log('app')"), 0o644))

	suite.cfg = testConfig(dist)
}

func (suite *RouterTestSuite) SetupTest() {
	suite.router, suite.shutdown = Initialize(suite.cfg)
	suite.cookies = map[string]*http.Cookie{}
}

func (suite *RouterTestSuite) TearDownTest() {
	suite.shutdown()
}

func (suite *RouterTestSuite) send(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range suite.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		suite.cookies[cookie.Name] = cookie
	}
	return w
}

func (suite *RouterTestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return suite.send(req)
}

func (suite *RouterTestSuite) upload(path, field string, files map[string][]byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, content := range files {
		part, err := writer.CreateFormFile(field, name)
		suite.Require().NoError(err)
		_, err = part.Write(content)
		suite.Require().NoError(err)
	}
	suite.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return suite.send(req)
}

func (suite *RouterTestSuite) decode(w *httptest.ResponseRecorder, data interface{}) envelope {
	var env envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil && len(env.Data) > 0 {
		suite.Require().NoError(json.Unmarshal(env.Data, data))
	}
	return env
}

func (suite *RouterTestSuite) chatError(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body["error"]
}

func (suite *RouterTestSuite) TestHealthz() {
	w := suite.request(http.MethodGet, "/healthz", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("ok", w.Body.String())
	suite.Contains(w.Header().Get("Content-Type"), "text/plain")
}

func (suite *RouterTestSuite) TestChatRejectsMissingMessage() {
	for _, body := range []interface{}{
		map[string]interface{}{"message": ""},
		map[string]interface{}{"system": "hi"},
		map[string]interface{}{"message": 42},
		"{not json",
	} {
		w := suite.request(http.MethodPost, "/api/chat", body)
		suite.Equal(http.StatusBadRequest, w.Code, "%v", body)
		suite.Equal("message is required", suite.chatError(w))
	}
}

func (suite *RouterTestSuite) TestChatWithoutKeyFails() {
	w := suite.request(http.MethodPost, "/api/chat", map[string]string{"message": "hello"})
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("OPENAI_API_KEY is not set on the server.", suite.chatError(w))
}

func (suite *RouterTestSuite) TestChatRejectsOversizedBody() {
	huge := strings.Repeat("a", 1<<20)
	w := suite.request(http.MethodPost, "/api/chat", map[string]string{"message": huge})
	suite.Equal(http.StatusRequestEntityTooLarge, w.Code)
}

func (suite *RouterTestSuite) TestSessionCookieKeepsWorkspace() {
	w := suite.request(http.MethodGet, "/api/session", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().Contains(suite.cookies, "mf_test")

	var first services.SessionSnapshot
	suite.decode(w, &first)
	suite.Equal("buyer", string(first.Role))
	suite.Equal([]string{"1"}, first.PurchasedIDs)

	suite.request(http.MethodPost, "/api/session/cart", nil)
	w = suite.request(http.MethodPost, "/api/session/cart", nil)
	var cart struct {
		CartCount int `json:"cart_count"`
	}
	suite.decode(w, &cart)
	suite.Equal(2, cart.CartCount)

	var again services.SessionSnapshot
	suite.decode(suite.request(http.MethodGet, "/api/session", nil), &again)
	suite.Equal(first.SessionID, again.SessionID)
	suite.Equal(2, again.CartCount)

	// A client without the cookie gets its own workspace
	suite.cookies = map[string]*http.Cookie{}
	var fresh services.SessionSnapshot
	suite.decode(suite.request(http.MethodGet, "/api/session", nil), &fresh)
	suite.NotEqual(first.SessionID, fresh.SessionID)
	suite.Equal(0, fresh.CartCount)
}

func (suite *RouterTestSuite) TestSessionCookieSlidesWithActivity() {
	w := suite.request(http.MethodGet, "/api/session", nil)
	suite.Require().Len(w.Result().Cookies(), 1)

	var first services.SessionSnapshot
	suite.decode(w, &first)

	for i := 0; i < 2; i++ {
		w = suite.request(http.MethodPost, "/api/session/cart", nil)
		cookies := w.Result().Cookies()
		suite.Require().Len(cookies, 1, "request %d", i)
		suite.Equal("mf_test", cookies[0].Name)
		suite.Equal(60*60, cookies[0].MaxAge)
	}

	var again services.SessionSnapshot
	suite.decode(suite.request(http.MethodGet, "/api/session", nil), &again)
	suite.Equal(first.SessionID, again.SessionID)
	suite.Equal(2, again.CartCount)
}

func (suite *RouterTestSuite) TestDomainRouteRejectsOversizedBody() {
	body := `{"role":"seller","padding":"` + strings.Repeat("x", 2<<20) + `"}`
	w := suite.request(http.MethodPut, "/api/session/role", body)
	suite.Equal(http.StatusRequestEntityTooLarge, w.Code)
	env := suite.decode(w, nil)
	suite.False(env.Success)
	suite.Equal("PAYLOAD_TOO_LARGE", env.Error.Code)

	var snapshot services.SessionSnapshot
	suite.decode(suite.request(http.MethodGet, "/api/session", nil), &snapshot)
	suite.Equal("buyer", string(snapshot.Role))

	w = suite.request(http.MethodPost, "/api/admin/users", `{"name":"`+strings.Repeat("n", 2<<20)+`","email":"a@b.c"}`)
	suite.Equal(http.StatusRequestEntityTooLarge, w.Code)
}

func (suite *RouterTestSuite) TestUpdateRole() {
	w := suite.request(http.MethodPut, "/api/session/role", map[string]string{"role": "seller"})
	suite.Equal(http.StatusOK, w.Code)

	var snapshot services.SessionSnapshot
	suite.decode(suite.request(http.MethodGet, "/api/session", nil), &snapshot)
	suite.Equal("seller", string(snapshot.Role))

	w = suite.request(http.MethodPut, "/api/session/role", map[string]string{"role": "owner"})
	suite.Equal(http.StatusBadRequest, w.Code)
	env := suite.decode(w, nil)
	suite.Equal("VALIDATION_ERROR", env.Error.Code)
}

func (suite *RouterTestSuite) TestCatalogFilters() {
	var products []map[string]interface{}
	w := suite.request(http.MethodGet, "/api/catalog/products?category=UI+Kits&min_price=0&max_price=1000&min_rating=0", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &products)
	suite.Require().Len(products, 1)
	suite.Equal("1", products[0]["id"])
	suite.Equal(true, products[0]["purchased"])

	suite.decode(suite.request(http.MethodGet, "/api/catalog/products?category=Fonts", nil), &products)
	suite.Empty(products)

	suite.decode(suite.request(http.MethodGet, "/api/catalog/products?q=react&max_price=not-a-number", nil), &products)
	suite.Len(products, 2)

	var categories []string
	suite.decode(suite.request(http.MethodGet, "/api/catalog/categories", nil), &categories)
	suite.Equal("All Assets", categories[0])
}

func (suite *RouterTestSuite) TestProductDetailAndRecentlyViewed() {
	var detail struct {
		Product map[string]interface{}   `json:"product"`
		Reviews []map[string]interface{} `json:"reviews"`
	}
	suite.decode(suite.request(http.MethodGet, "/api/catalog/products/1", nil), &detail)
	suite.Equal(4.5, detail.Product["average_rating"])
	suite.Len(detail.Reviews, 2)

	suite.Equal(http.StatusNotFound, suite.request(http.MethodGet, "/api/catalog/products/99", nil).Code)

	suite.request(http.MethodPost, "/api/catalog/products/2/view", nil)
	suite.request(http.MethodPost, "/api/catalog/products/3/view", nil)
	suite.request(http.MethodPost, "/api/catalog/products/2/view", nil)

	var recent []map[string]interface{}
	suite.decode(suite.request(http.MethodGet, "/api/session/recently-viewed", nil), &recent)
	suite.Require().Len(recent, 2)
	suite.Equal("2", recent[0]["id"])
	suite.Equal("3", recent[1]["id"])
}

func (suite *RouterTestSuite) TestReviewRequiresPurchase() {
	review := map[string]interface{}{"rating": 5, "comment": "Worth it"}

	w := suite.request(http.MethodPost, "/api/catalog/products/2/reviews", review)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodPost, "/api/catalog/products/2/purchase", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodPost, "/api/catalog/products/2/reviews", map[string]interface{}{"rating": 0, "comment": ""})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/catalog/products/2/reviews", review)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var reviews []map[string]interface{}
	suite.decode(suite.request(http.MethodGet, "/api/catalog/products/2/reviews", nil), &reviews)
	suite.Require().Len(reviews, 2)
	suite.Equal("Worth it", reviews[0]["comment"])
	suite.Equal("Alex Rivera", reviews[0]["user_name"])

	suite.Equal(http.StatusNotFound, suite.request(http.MethodPost, "/api/catalog/products/99/reviews", review).Code)
}

func (suite *RouterTestSuite) TestBuyerOrders() {
	var orders []map[string]interface{}
	suite.decode(suite.request(http.MethodGet, "/api/buyer/orders", nil), &orders)
	suite.Len(orders, 3)

	var download map[string]interface{}
	suite.decode(suite.request(http.MethodGet, "/api/buyer/orders/ORD-8829-X", nil), &download)
	suite.Equal("http://localhost:3000/#/buyer/download/ORD-8829-X", download["download_url"])
	suite.Equal("/api/buyer/orders/ORD-8829-X/qrcode", download["qr_code_url"])
	suite.Equal(true, download["payment_verified"])

	w := suite.request(http.MethodGet, "/api/buyer/orders/ORD-8829-X/qrcode", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("image/png", w.Header().Get("Content-Type"))
	suite.True(bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	suite.decode(suite.request(http.MethodPost, "/api/buyer/orders/scan", map[string]string{
		"payload": "http://localhost:3000/#/buyer/download/ORD-7741-K",
	}), &download)
	suite.Equal("ORD-7741-K", download["id"])

	suite.Equal(http.StatusNotFound, suite.request(http.MethodGet, "/api/buyer/orders/NOPE", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.request(http.MethodPost, "/api/buyer/orders/scan", map[string]string{"payload": " "}).Code)
}

func (suite *RouterTestSuite) TestSellerDraftFlow() {
	var draft map[string]interface{}
	suite.decode(suite.request(http.MethodGet, "/api/seller/draft", nil), &draft)
	suite.Equal("Design Assets", draft["category"])
	suite.Equal("49.00", draft["price"])

	w := suite.request(http.MethodPost, "/api/seller/draft/describe", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPut, "/api/seller/draft", map[string]string{"title": "Pixel Icons", "category": "E-books"})
	suite.Equal(http.StatusOK, w.Code)
	w = suite.request(http.MethodPut, "/api/seller/draft", map[string]string{"category": "Fonts"})
	suite.Equal(http.StatusBadRequest, w.Code)

	// title present but no upstream key configured
	w = suite.request(http.MethodPost, "/api/seller/draft/describe", nil)
	suite.Equal(http.StatusServiceUnavailable, w.Code)

	w = suite.upload("/api/seller/draft/primary-image", "image", map[string][]byte{"cover.png": pngBytes})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.upload("/api/seller/draft/gallery", "images", map[string][]byte{"a.png": pngBytes, "b.png": pngBytes})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.upload("/api/seller/draft/gallery", "images", map[string][]byte{"notes.txt": []byte("plain text")})
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.Equal(http.StatusOK, suite.request(http.MethodDelete, "/api/seller/draft/gallery/0", nil).Code)
	suite.Equal(http.StatusNotFound, suite.request(http.MethodDelete, "/api/seller/draft/gallery/5", nil).Code)

	var final struct {
		Title        string   `json:"title"`
		PrimaryImage string   `json:"primary_image"`
		Gallery      []string `json:"gallery"`
	}
	suite.decode(suite.request(http.MethodGet, "/api/seller/draft", nil), &final)
	suite.Equal("Pixel Icons", final.Title)
	suite.True(strings.HasPrefix(final.PrimaryImage, "data:image/png;base64,"))
	suite.Len(final.Gallery, 1)
}

func (suite *RouterTestSuite) TestSellerOnboardingAndDashboard() {
	var progress map[string]interface{}
	suite.decode(suite.request(http.MethodGet, "/api/seller/onboarding", nil), &progress)
	suite.Equal(false, progress["connecting"])

	w := suite.request(http.MethodPost, "/api/seller/onboarding/connect", nil)
	suite.Equal(http.StatusAccepted, w.Code)

	suite.decode(suite.request(http.MethodGet, "/api/seller/onboarding", nil), &progress)
	suite.Equal(true, progress["connecting"])

	var dashboard map[string]interface{}
	suite.decode(suite.request(http.MethodGet, "/api/seller/dashboard", nil), &dashboard)
	suite.Len(dashboard["metrics"], 4)
}

func (suite *RouterTestSuite) TestAdminDirectory() {
	var users []map[string]interface{}
	suite.decode(suite.request(http.MethodGet, "/api/admin/users?search=seller", nil), &users)
	suite.Len(users, 2)

	w := suite.request(http.MethodPost, "/api/admin/users", map[string]string{"name": "", "email": "x@y.z"})
	suite.Equal(http.StatusBadRequest, w.Code)

	var created struct {
		User map[string]interface{} `json:"user"`
	}
	w = suite.request(http.MethodPost, "/api/admin/users", map[string]string{"name": "Dana Scully", "email": "dana@fbi.gov"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	suite.decode(w, &created)
	id := created.User["id"].(string)
	suite.True(strings.HasPrefix(id, "USR-"))
	suite.Equal("buyer", created.User["role"])

	w = suite.request(http.MethodPut, "/api/admin/users/"+id+"/role", map[string]string{"role": "admin"})
	suite.Equal(http.StatusOK, w.Code)

	suite.Equal(http.StatusBadRequest, suite.request(http.MethodPut, "/api/admin/users/"+id+"/avatar", nil).Code)

	w = suite.upload("/api/admin/users/"+id+"/avatar", "avatar", map[string][]byte{"me.png": pngBytes})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var committed struct {
		User map[string]interface{} `json:"user"`
	}
	w = suite.request(http.MethodPut, "/api/admin/users/"+id+"/avatar", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &committed)
	suite.True(strings.HasPrefix(committed.User["avatar"].(string), "data:image/png;base64,"))
	suite.NotContains(committed.User, "pending_avatar")

	var stats struct {
		TotalUsers  int            `json:"total_users"`
		UsersByRole map[string]int `json:"users_by_role"`
	}
	suite.decode(suite.request(http.MethodGet, "/api/admin/stats", nil), &stats)
	suite.Equal(6, stats.TotalUsers)
	suite.Equal(2, stats.UsersByRole["admin"])

	suite.Equal(http.StatusOK, suite.request(http.MethodDelete, "/api/admin/users/"+id, nil).Code)
	suite.Equal(http.StatusNotFound, suite.request(http.MethodDelete, "/api/admin/users/"+id, nil).Code)
	suite.Equal(http.StatusNotFound, suite.upload("/api/admin/users/USR-999/avatar", "avatar", map[string][]byte{"me.png": pngBytes}).Code)
}

func (suite *RouterTestSuite) TestStaticFallback() {
	w := suite.request(http.MethodGet, "/assets/app.js", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("console.log('app')", w.Body.String())

	w = suite.request(http.MethodGet, "/buyer/orders", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "marketflow")

	w = suite.request(http.MethodGet, "/api/nope", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	env := suite.decode(w, nil)
	suite.False(env.Success)
	suite.Equal("NOT_FOUND", env.Error.Code)
}

func (suite *RouterTestSuite) TestMetricsExposition() {
	suite.request(http.MethodGet, "/api/catalog/categories", nil)
	suite.request(http.MethodPost, "/api/chat", map[string]string{"message": ""})

	w := suite.request(http.MethodGet, "/metrics", nil)
	suite.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	suite.Contains(body, "marketflow_http_requests_total")
	suite.Contains(body, `path="/api/catalog/categories"`)
	suite.Contains(body, `marketflow_chat_requests_total{outcome="invalid"} 1`)
	suite.Contains(body, "marketflow_session_active_workspaces 1")
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func TestStaticFallbackWithoutDist(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, i18n.Initialize("en"))

	router, shutdown := Initialize(testConfig(filepath.Join(t.TempDir(), "missing")))
	defer shutdown()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/marketplace", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func fakeOpenAI(t *testing.T, status int, reply string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-4.1-mini",
			"choices": []map[string]interface{}{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": reply},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func chatRouter(t *testing.T, upstream *httptest.Server) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, i18n.Initialize("en"))

	cfg := testConfig("")
	cfg.OpenAI.APIKey = "test-key"
	cfg.OpenAI.BaseURL = upstream.URL + "/v1"

	router, shutdown := Initialize(cfg)
	t.Cleanup(shutdown)
	return router
}

func postChat(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatRelaysUpstreamReply(t *testing.T) {
	router := chatRouter(t, fakeOpenAI(t, http.StatusOK, "Sellers keep 90%."))

	w := postChat(router, `{"message":"What is the fee?"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reply":"Sellers keep 90%."}`, w.Body.String())

	// empty message is still a 400 with a key configured
	w = postChat(router, `{"message":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatHidesUpstreamFailure(t *testing.T) {
	router := chatRouter(t, fakeOpenAI(t, http.StatusInternalServerError, ""))

	w := postChat(router, `{"message":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to get response from OpenAI."}`, w.Body.String())
}

func TestChatEmptyCompletionFallsBack(t *testing.T) {
	router := chatRouter(t, fakeOpenAI(t, http.StatusOK, ""))

	w := postChat(router, `{"message":"hello"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reply":"I'm sorry, I couldn't generate a response."}`, w.Body.String())
}

func TestChatRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, i18n.Initialize("en"))

	cfg := testConfig("")
	cfg.RateLimit.ChatPerMinute = 1
	cfg.RateLimit.ChatBurst = 2
	router, shutdown := Initialize(cfg)
	defer shutdown()

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusInternalServerError, postChat(router, `{"message":"hi"}`).Code)
	}

	w := postChat(router, `{"message":"hi"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Rate limit exceeded. Please try again later."}`, w.Body.String())
}

func TestWorkspaceEventStream(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, i18n.Initialize("en"))

	router, shutdown := Initialize(testConfig(""))
	defer shutdown()

	server := httptest.NewServer(router)
	defer server.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar, Timeout: 5 * time.Second}

	resp, err := client.Get(server.URL + "/api/session")
	require.NoError(t, err)
	resp.Body.Close()

	serverURL, err := url.Parse(server.URL)
	require.NoError(t, err)
	header := http.Header{}
	for _, cookie := range jar.Cookies(serverURL) {
		header.Add("Cookie", cookie.String())
	}

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/session/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var snapshot services.Event
	require.NoError(t, conn.ReadJSON(&snapshot))
	assert.Equal(t, services.EventSnapshot, snapshot.Type)

	resp, err = client.Post(server.URL+"/api/session/cart", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	var event struct {
		Type string         `json:"type"`
		Data map[string]int `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, services.EventCartUpdated, event.Type)
	assert.Equal(t, 1, event.Data["cart_count"])
}
