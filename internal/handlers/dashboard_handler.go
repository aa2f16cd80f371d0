package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/httpresp"
	dashboarduc "github.com/BruksfildServices01/store-rating/internal/usecase/dashboard"
)

const dashboardError = "Error fetching dashboard data"

type DashboardHandler struct {
	admin      *dashboarduc.Admin
	storeOwner *dashboarduc.StoreOwner
	user       *dashboarduc.User
	log        *zap.Logger
}

func NewDashboardHandler(
	admin *dashboarduc.Admin,
	storeOwner *dashboarduc.StoreOwner,
	user *dashboarduc.User,
	log *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		admin:      admin,
		storeOwner: storeOwner,
		user:       user,
		log:        log,
	}
}

func (h *DashboardHandler) Admin(c *gin.Context) {
	data, err := h.admin.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err, dashboardError)
		return
	}
	httpresp.OK(c, "", data)
}

func (h *DashboardHandler) StoreOwner(c *gin.Context) {
	owner, ok := currentUser(c)
	if !ok {
		return
	}

	data, err := h.storeOwner.Execute(c.Request.Context(), owner.ID)
	if err != nil {
		httperr.Respond(c, h.log, err, dashboardError)
		return
	}
	httpresp.OK(c, "", data)
}

func (h *DashboardHandler) User(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	stores, err := h.user.Execute(c.Request.Context(), user.ID)
	if err != nil {
		httperr.Respond(c, h.log, err, dashboardError)
		return
	}
	httpresp.List(c, stores)
}
