package payment

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
	payments := r.Group("/payments")

	payments.Use(authMW)

	{
		payments.GET("/unlinked-transactions", middleware.RBACAuthorize(rbacService, "payment", "read"), h.UnlinkedTransactions)
		payments.POST("/match",
			middleware.RBACAuthorize(rbacService, "payment", "create"),
			middleware.RateLimitByUser(1, 5),
			middleware.Idempotency(rdb),
			h.Match,
		)
		payments.GET("/sagas/:id", middleware.RBACAuthorize(rbacService, "payment", "read"), h.GetSaga)
	}
}
