package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kariqs/amexan-store/controllers"
	"github.com/Kariqs/amexan-store/export"
	"github.com/Kariqs/amexan-store/initializers"
	"github.com/Kariqs/amexan-store/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const secret = "test-secret"

type fakeImageStore struct {
	uploaded []string
}

func (f *fakeImageStore) Upload(_ context.Context, filename string, body io.Reader, _ string) (string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	f.uploaded = append(f.uploaded, filename)
	return "https://cdn.example/" + filename, nil
}

type testApp struct {
	db     *gorm.DB
	router *gin.Engine
	images *fakeImageStore
}

// setupTestDB creates an in-memory SQLite database with every model migrated and lookups seeded.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, initializers.SyncDatabase(db, zap.NewNop()))
	return db
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	images := &fakeImageStore{}
	router := gin.New()
	Register(router, controllers.NewHandlers(db, images, zap.NewNop(), secret, 10))

	return &testApp{db: db, router: router, images: images}
}

func tokenFor(t *testing.T, userID uint, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func (a *testApp) createProduct(t *testing.T, name string, price string, quantity int, active bool) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: decimal.RequireFromString(price), Quantity: quantity, IsActive: active}
	require.NoError(t, a.db.Create(&product).Error)
	return product
}

func TestDefaultRoutes(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w)["message"], "/cart/:productId")

	w = app.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestAuthRoutes(t *testing.T) {
	app := newTestApp(t)

	signup := gin.H{"fullName": "Jane Doe", "email": "jane@example.com", "password": "supersecret"}
	w := app.do(t, http.MethodPost, "/auth/signup", "", signup)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do(t, http.MethodPost, "/auth/signup", "", signup)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/auth/signup", "", gin.H{"fullName": "Short", "email": "s@example.com", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "jane@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "nobody@example.com", "password": "supersecret"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "jane@example.com", "password": "supersecret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	assert.NotContains(t, w.Body.String(), "supersecret")

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) { return []byte(secret), nil })
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, claims["role"])

	w = app.do(t, http.MethodGet, "/cart", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, "issued tokens open authenticated routes")
}

func TestCartRoutes(t *testing.T) {
	app := newTestApp(t)
	token := tokenFor(t, 7, models.RoleCustomer)
	product := app.createProduct(t, "Laptop", "999.50", 2, true)
	path := fmt.Sprintf("/cart/%d", product.ID)

	assert.Equal(t, http.StatusUnauthorized, app.do(t, http.MethodPost, path, "", nil).Code)

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodPost, path, token, nil).Code)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodPost, path, token, nil).Code)

	w := app.do(t, http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])

	assert.Equal(t, http.StatusConflict, app.do(t, http.MethodPatch, path+"/increase", token, nil).Code)

	w = app.do(t, http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, float64(2), body["itemCount"])
	assert.Equal(t, "1999", body["totalPrice"])

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodPatch, path+"/decrease", token, nil).Code)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodDelete, path, token, nil).Code)

	w = app.do(t, http.MethodGet, "/cart", token, nil)
	body = decode(t, w)
	assert.Equal(t, float64(0), body["itemCount"])
	assert.Empty(t, body["items"])

	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodPatch, path+"/increase", token, nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodPost, "/cart/999", token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPost, "/cart/abc", token, nil).Code)
}

func TestProductRoutes(t *testing.T) {
	app := newTestApp(t)

	laptops := models.Category{Name: "Laptops"}
	require.NoError(t, app.db.Create(&laptops).Error)
	phones := models.Category{Name: "Phones"}
	require.NoError(t, app.db.Create(&phones).Error)

	thinkpad := app.createProduct(t, "ThinkPad", "900", 3, true)
	require.NoError(t, app.db.Model(&thinkpad).Update("category_id", laptops.ID).Error)
	hidden := app.createProduct(t, "Hidden laptop", "100", 3, false)
	pixel := app.createProduct(t, "Pixel", "700", 3, true)
	require.NoError(t, app.db.Model(&pixel).Update("category_id", phones.ID).Error)

	w := app.do(t, http.MethodGet, "/products?sort=name-asc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(2), body["totalCount"])
	rows := body["rows"].([]any)
	assert.Equal(t, "Pixel", rows[0].(map[string]any)["name"])

	w = app.do(t, http.MethodGet, fmt.Sprintf("/products?category=%d", laptops.ID), "", nil)
	body = decode(t, w)
	assert.Equal(t, float64(1), body["totalCount"])

	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodGet, "/products?category=x", "", nil).Code)

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, fmt.Sprintf("/products/%d", thinkpad.ID), "", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, fmt.Sprintf("/products/%d", hidden.ID), "", nil).Code)

	w = app.do(t, http.MethodGet, "/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["categories"], 2)
}

func TestOrderRoutes(t *testing.T) {
	app := newTestApp(t)

	var pending models.OrderStatus
	require.NoError(t, app.db.Where("name = ?", models.StatusPending).First(&pending).Error)

	mine := models.Order{UserID: 7, CustomerName: "Jane", Total: decimal.NewFromInt(100), OrderStatusID: pending.ID}
	theirs := models.Order{UserID: 8, CustomerName: "John", Total: decimal.NewFromInt(50), OrderStatusID: pending.ID}
	require.NoError(t, app.db.Create(&mine).Error)
	require.NoError(t, app.db.Create(&theirs).Error)

	token := tokenFor(t, 7, models.RoleCustomer)

	w := app.do(t, http.MethodGet, "/orders", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["totalCount"])

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, fmt.Sprintf("/orders/%d", mine.ID), token, nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, fmt.Sprintf("/orders/%d", theirs.ID), token, nil).Code)

	admin := tokenFor(t, 1, models.RoleAdmin)
	var cancelled models.OrderStatus
	require.NoError(t, app.db.Where("name = ?", models.StatusCancelled).First(&cancelled).Error)

	w = app.do(t, http.MethodPatch, fmt.Sprintf("/admin/orders/%d/status", mine.ID), admin, gin.H{"orderStatusId": cancelled.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, fmt.Sprintf("/admin/orders/%d", mine.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["readOnly"])

	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodPatch, "/admin/orders/999/status", admin, gin.H{"orderStatusId": cancelled.ID}).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodPatch, fmt.Sprintf("/admin/orders/%d/status", mine.ID), admin, gin.H{"orderStatusId": 999}).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodPost, "/admin/orders", admin, gin.H{"customerName": "X"}).Code, "orders are not created from the back office")
}

func TestAdminRoutes_Access(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, http.StatusUnauthorized, app.do(t, http.MethodGet, "/admin/brands", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodGet, "/admin/brands", tokenFor(t, 7, models.RoleCustomer), nil).Code)

	admin := tokenFor(t, 1, models.RoleAdmin)
	for _, entity := range []string{
		"products", "orders", "users", "roles", "promotions", "order-statuses", "deliveries", "brands",
		"categories", "colors", "storages", "rams", "cpus", "gpus", "operating-systems",
	} {
		w := app.do(t, http.MethodGet, "/admin/"+entity, admin, nil)
		assert.Equal(t, http.StatusOK, w.Code, entity)
	}
}

func TestAdminRoutes_BrandLifecycle(t *testing.T) {
	app := newTestApp(t)
	admin := tokenFor(t, 1, models.RoleAdmin)

	w := app.do(t, http.MethodPost, "/admin/brands", admin, gin.H{"name": "Lenovo"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := uint(decode(t, w)["data"].(map[string]any)["ID"].(float64))

	w = app.do(t, http.MethodPost, "/admin/brands", admin, gin.H{"name": "Lenovo"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Brand with this name already exists", decode(t, w)["message"])

	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPost, "/admin/brands", admin, gin.H{}).Code)

	w = app.do(t, http.MethodPut, fmt.Sprintf("/admin/brands/%d", id), admin, gin.H{"name": "Lenovo Group"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, fmt.Sprintf("/admin/brands/%d", id), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Lenovo Group", decode(t, w)["name"])

	w = app.do(t, http.MethodGet, "/admin/brands?search=group", admin, nil)
	assert.Equal(t, float64(1), decode(t, w)["totalCount"])

	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/admin/brands", admin, gin.H{"name": "Dell"}).Code)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/admin/brands", admin, gin.H{"name": "HP"}).Code)

	w = app.do(t, http.MethodGet, "/admin/brands/export", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "brands.xlsx")
	workbook, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	assert.Len(t, workbook.Sheets[0].Rows, 4)

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodDelete, fmt.Sprintf("/admin/brands/%d", id), admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodDelete, fmt.Sprintf("/admin/brands/%d", id), admin, nil).Code)

	var remaining []models.Brand
	require.NoError(t, app.db.Find(&remaining).Error)
	ids := make([]uint, 0, len(remaining))
	for _, b := range remaining {
		ids = append(ids, b.ID)
	}

	w = app.do(t, http.MethodPost, "/admin/brands/delete", admin, gin.H{"ids": ids})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["deleted"])

	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPost, "/admin/brands/delete", admin, gin.H{"ids": []uint{}}).Code)
}

func TestAdminRoutes_UserPasswordIsHashed(t *testing.T) {
	app := newTestApp(t)
	admin := tokenFor(t, 1, models.RoleAdmin)

	w := app.do(t, http.MethodPost, "/admin/users", admin, gin.H{"fullName": "No Password", "email": "np@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/admin/users", admin, gin.H{"fullName": "Staff", "email": "staff@example.com", "password": "staffpass1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "staffpass1")

	var user models.User
	require.NoError(t, app.db.Where("email = ?", "staff@example.com").First(&user).Error)
	assert.NotEqual(t, "staffpass1", user.Password)

	w = app.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "staff@example.com", "password": "staffpass1"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPut, fmt.Sprintf("/admin/users/%d", user.ID), admin, gin.H{"fullName": "Staff Member", "email": "staff@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "staff@example.com", "password": "staffpass1"})
	assert.Equal(t, http.StatusOK, w.Code, "an update without a password keeps the old one")
}

func TestAdminRoutes_UploadProductImages(t *testing.T) {
	app := newTestApp(t)
	admin := tokenFor(t, 1, models.RoleAdmin)
	product := app.createProduct(t, "Laptop", "999", 1, true)

	upload := func(path string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		for _, name := range []string{"front.png", "back.png"} {
			part, err := writer.CreateFormFile("images", name)
			require.NoError(t, err)
			_, err = part.Write([]byte("png"))
			require.NoError(t, err)
		}
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, path, &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+admin)
		w := httptest.NewRecorder()
		app.router.ServeHTTP(w, req)
		return w
	}

	w := upload(fmt.Sprintf("/admin/products/%d/images", product.ID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode(t, w)["urls"], 2)
	assert.Equal(t, []string{"front.png", "back.png"}, app.images.uploaded)

	var images int64
	require.NoError(t, app.db.Model(&models.ProductImage{}).Where("product_id = ?", product.ID).Count(&images).Error)
	assert.Equal(t, int64(2), images)

	assert.Equal(t, http.StatusNotFound, upload("/admin/products/999/images").Code)
}

func TestAdminRoutes_ProductExportUsesSellingPrice(t *testing.T) {
	app := newTestApp(t)
	admin := tokenFor(t, 1, models.RoleAdmin)

	product := app.createProduct(t, "Laptop", "999.99", 1, true)
	require.NoError(t, app.db.Model(&product).Update("price_with_discount", decimal.RequireFromString("899.50")).Error)
	app.createProduct(t, "Mouse", "20", 5, true)

	w := app.do(t, http.MethodGet, "/admin/products/export?sort=name-asc", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	workbook, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	rows := workbook.Sheets[0].Rows
	require.Len(t, rows, 3)

	assert.Equal(t, "Selling price", rows[0].Cells[3].String())
	selling := map[string]string{}
	for _, row := range rows[1:] {
		selling[row.Cells[0].String()] = row.Cells[3].String()
	}
	assert.Equal(t, map[string]string{"Laptop": "899.5", "Mouse": "20"}, selling)
}

func TestAdminRoutes_SearchAcceptsArrayOrScalarSort(t *testing.T) {
	app := newTestApp(t)
	admin := tokenFor(t, 1, models.RoleAdmin)

	for _, name := range []string{"Dell", "Asus", "Apple", "HP"} {
		require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/admin/brands", admin, gin.H{"name": name}).Code)
	}

	names := func(w *httptest.ResponseRecorder) []string {
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var listing struct {
			Rows []struct {
				Name string `json:"name"`
			} `json:"rows"`
			TotalCount int64 `json:"totalCount"`
			Page       int   `json:"page"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
		out := make([]string, 0, len(listing.Rows))
		for _, row := range listing.Rows {
			out = append(out, row.Name)
		}
		return out
	}

	byArray := names(app.do(t, http.MethodPost, "/admin/brands/search", admin, gin.H{"sort": []string{"name-desc", "date-desc"}}))
	byScalar := names(app.do(t, http.MethodPost, "/admin/brands/search", admin, gin.H{"sort": "name-desc,date-desc"}))
	assert.Equal(t, []string{"HP", "Dell", "Asus", "Apple"}, byArray)
	assert.Equal(t, byArray, byScalar)

	w := app.do(t, http.MethodPost, "/admin/brands/search", admin, gin.H{"search": "a", "sort": "name-asc", "page": 1})
	assert.Equal(t, []string{"Apple", "Asus"}, names(w))

	w = app.do(t, http.MethodPost, "/admin/brands/search", admin, gin.H{"page": 2})
	assert.Empty(t, names(w))

	req := httptest.NewRequest(http.MethodPost, "/admin/brands/search", bytes.NewBufferString("[1,2]"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+admin)
	w = httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
