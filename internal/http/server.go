package http

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
	"gorm.io/gorm"

	"cashbook/internal/config"
	"cashbook/internal/models"
	"cashbook/internal/services"
)

type Server struct {
	cfg          *config.Config
	db           *gorm.DB
	records      *services.RecordService
	categories   *services.CategoryService
	accounts     *services.AccountService
	methods      *services.MethodOfPaymentService
	customers    *services.CustomerService
	users        *services.UserService
	importSchema *gojsonschema.Schema
}

func NewServer(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors(cfg))
	r.Use(logging())

	s := &Server{
		cfg:        cfg,
		db:         db,
		records:    services.NewRecordService(db),
		categories: services.NewCategoryService(db),
		accounts:   services.NewAccountService(db),
		methods:    services.NewMethodOfPaymentService(db),
		customers:  services.NewCustomerService(db),
		users:      services.NewUserService(db),
	}

	if cfg.ImportSchema != "" {
		raw, err := os.ReadFile(cfg.ImportSchema)
		if err != nil {
			log.Printf("import schema unavailable, bulk import disabled: %v", err)
		} else {
			schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
			if err != nil {
				log.Printf("import schema invalid, bulk import disabled: %v", err)
			} else {
				s.importSchema = schema
			}
		}
	}

	r.POST("/v1/auth/register", s.authRegister)
	r.POST("/v1/auth/login", s.authLogin)

	// list/retrieve are open to unauthenticated callers
	r.GET("/v1/records", s.listRecords)
	r.GET("/v1/records/:id", s.getRecord)
	r.GET("/v1/categories", s.listCategories)
	r.GET("/v1/categories/:id", s.getCategory)
	r.GET("/v1/methods_of_payment", s.listMethods)
	r.GET("/v1/methods_of_payment/:id", s.getMethod)
	r.GET("/v1/accounts", s.listAccounts)
	r.GET("/v1/accounts/:id", s.getAccount)
	r.GET("/v1/customers", s.listCustomers)
	r.GET("/v1/customers/:id", s.getCustomer)
	r.GET("/v1/users", s.listUsers)
	r.GET("/v1/users/:id", s.getUser)

	// writes require a valid token; owner is attached server-side
	authed := r.Group("/v1")
	authed.Use(s.requireAuth())
	{
		authed.GET("/me", s.getMe)
		authed.POST("/records", s.createRecord)
		authed.PUT("/records/:id", s.updateRecord)
		authed.DELETE("/records/:id", s.deleteRecord)
		authed.POST("/import/records", s.importRecords)
		authed.POST("/records/:id/voucher", s.uploadVoucher)
		authed.POST("/categories", s.createCategory)
		authed.PUT("/categories/:id", s.updateCategory)
		authed.DELETE("/categories/:id", s.deleteCategory)
		authed.POST("/methods_of_payment", s.createMethod)
		authed.PUT("/methods_of_payment/:id", s.updateMethod)
		authed.DELETE("/methods_of_payment/:id", s.deleteMethod)
		authed.POST("/accounts", s.createAccount)
		authed.PUT("/accounts/:id", s.updateAccount)
		authed.DELETE("/accounts/:id", s.deleteAccount)
		authed.POST("/customers", s.createCustomer)
		authed.PUT("/customers/:id", s.updateCustomer)
		authed.DELETE("/customers/:id", s.deleteCustomer)
	}

	// operator console
	admin := r.Group("/admin")
	admin.Use(s.requireAuth(), s.requireStaff())
	{
		admin.GET("/categories/tree", s.adminCategoryTree)
		admin.PUT("/categories/:id/move", s.adminMoveCategory)
		admin.GET("/records", s.listRecords)
		admin.GET("/accounts", s.listAccounts)
		admin.GET("/methods_of_payment", s.listMethods)
		admin.GET("/customers", s.listCustomers)
		admin.GET("/users", s.listUsers)
		admin.DELETE("/users/:id", s.adminDeleteUser)
	}

	r.Static("/uploads", cfg.UploadDir)
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	return r
}

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_id"})
		return 0, false
	}
	return uint(id), true
}

// canEdit reports whether user may mutate a row owned by ownerID. Globally
// shared rows (nil owner) are staff-editable only.
func canEdit(user *models.User, ownerID *uint) bool {
	if user == nil {
		return false
	}
	if user.IsStaff {
		return true
	}
	return ownerID != nil && *ownerID == user.ID
}

func cors(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.AllowOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
