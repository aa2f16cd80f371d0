package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/store-rating/internal/domain/store"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/httpresp"
	storeuc "github.com/BruksfildServices01/store-rating/internal/usecase/store"
)

type StoreHandler struct {
	list   *storeuc.List
	get    *storeuc.Get
	create *storeuc.Create
	mine   *storeuc.Mine
	log    *zap.Logger
}

func NewStoreHandler(
	list *storeuc.List,
	get *storeuc.Get,
	create *storeuc.Create,
	mine *storeuc.Mine,
	log *zap.Logger,
) *StoreHandler {
	return &StoreHandler{
		list:   list,
		get:    get,
		create: create,
		mine:   mine,
		log:    log,
	}
}

type CreateStoreRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	OwnerEmail string `json:"owner_email"`
}

// List supports ?name=&email=&address=&sort=&order=.
func (h *StoreHandler) List(c *gin.Context) {
	var filter domain.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httperr.BadRequest(c, "invalid_query", "Invalid query parameters")
		return
	}

	stores, err := h.list.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Respond(c, h.log, err, "Error fetching stores")
		return
	}

	httpresp.List(c, stores)
}

func (h *StoreHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	store, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err, "Error fetching store")
		return
	}

	httpresp.OK(c, "", store)
}

func (h *StoreHandler) Create(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateStoreRequest
	if !bindJSON(c, &req) {
		return
	}

	store, err := h.create.Execute(c.Request.Context(), storeuc.CreateInput{
		ActorID:    admin.ID,
		Name:       req.Name,
		Email:      req.Email,
		Address:    req.Address,
		OwnerEmail: req.OwnerEmail,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "Error creating store")
		return
	}

	httpresp.Created(c, "Store created successfully", store)
}

func (h *StoreHandler) Mine(c *gin.Context) {
	owner, ok := currentUser(c)
	if !ok {
		return
	}

	store, err := h.mine.Execute(c.Request.Context(), owner.ID)
	if err != nil {
		httperr.Respond(c, h.log, err, "Error fetching your store")
		return
	}

	httpresp.OK(c, "", store)
}
