package payroll

import (
	"go-erp/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
	authMW gin.HandlerFunc,
	rdb *redis.Client,
) {
	payroll := r.Group("/payroll")
	payroll.Use(authMW)
	{
		payroll.POST("/preview", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.Preview)
		payroll.POST("/tax-preview", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.PreviewTax)
		payroll.POST("/calculate",
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb),
			h.Calculate,
		)
		payroll.GET("/insurance-config", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.GetInsuranceConfig)
		payroll.PUT("/insurance-config", middleware.RBACAuthorize(rbacService, "payroll", "update"), h.UpdateInsuranceConfig)
	}

	payslips := r.Group("/payslips")
	payslips.Use(authMW)
	{
		payslips.GET("", middleware.RBACAuthorize(rbacService, "payslip", "read"), h.GetAll)
		payslips.GET("/:id", middleware.RBACAuthorize(rbacService, "payslip", "read"), h.GetById)
		payslips.GET("/:id/pdf", middleware.RBACAuthorize(rbacService, "payslip", "read"), h.DownloadPayslip)
	}
}
