package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/store-rating/internal/domain/user"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/httpresp"
	useruc "github.com/BruksfildServices01/store-rating/internal/usecase/user"
)

type UserHandler struct {
	list    *useruc.List
	get     *useruc.Get
	create  *useruc.Create
	profile *useruc.Profile
	log     *zap.Logger
}

func NewUserHandler(
	list *useruc.List,
	get *useruc.Get,
	create *useruc.Create,
	profile *useruc.Profile,
	log *zap.Logger,
) *UserHandler {
	return &UserHandler{
		list:    list,
		get:     get,
		create:  create,
		profile: profile,
		log:     log,
	}
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

// List supports ?name=&email=&address=&role=&sort=&order=.
func (h *UserHandler) List(c *gin.Context) {
	var filter domain.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httperr.BadRequest(c, "invalid_query", "Invalid query parameters")
		return
	}

	users, err := h.list.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Respond(c, h.log, err, "Error fetching users")
		return
	}

	httpresp.List(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err, "Error fetching user details")
		return
	}

	httpresp.OK(c, "", detail)
}

func (h *UserHandler) Create(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.create.Execute(c.Request.Context(), useruc.CreateInput{
		ActorID:  admin.ID,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "Error creating user")
		return
	}

	httpresp.Created(c, "User created successfully", user)
}

func (h *UserHandler) Profile(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.profile.Execute(c.Request.Context(), me.ID)
	if err != nil {
		httperr.Respond(c, h.log, err, "Error fetching profile")
		return
	}

	httpresp.OK(c, "", user)
}
