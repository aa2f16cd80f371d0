package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/httpresp"
	"github.com/BruksfildServices01/store-rating/internal/metrics"
	ratinguc "github.com/BruksfildServices01/store-rating/internal/usecase/rating"
)

type RatingHandler struct {
	submit   *ratinguc.Submit
	forUser  *ratinguc.ForUser
	forStore *ratinguc.ForStore
	count    *ratinguc.Count
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewRatingHandler(
	submit *ratinguc.Submit,
	forUser *ratinguc.ForUser,
	forStore *ratinguc.ForStore,
	count *ratinguc.Count,
	m *metrics.Metrics,
	log *zap.Logger,
) *RatingHandler {
	return &RatingHandler{
		submit:   submit,
		forUser:  forUser,
		forStore: forStore,
		count:    count,
		metrics:  m,
		log:      log,
	}
}

// SubmitRatingRequest keeps rating as a number of any kind so a fractional
// value is reported as out of range instead of failing to decode.
type SubmitRatingRequest struct {
	StoreID uint    `json:"storeId"`
	Rating  float64 `json:"rating"`
}

func (h *RatingHandler) Submit(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req SubmitRatingRequest
	if !bindJSON(c, &req) {
		return
	}

	rating, err := h.submit.Execute(c.Request.Context(), ratinguc.SubmitInput{
		UserID:  user.ID,
		StoreID: req.StoreID,
		Rating:  req.Rating,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "Error submitting rating")
		return
	}

	h.metrics.RatingSubmitted()
	httpresp.OK(c, "Rating submitted successfully", rating)
}

// ForUser answers with data null when the caller has not rated the store.
func (h *RatingHandler) ForUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	storeID, ok := pathID(c, "storeId")
	if !ok {
		return
	}

	rating, err := h.forUser.Execute(c.Request.Context(), user.ID, storeID)
	if err != nil {
		httperr.Respond(c, h.log, err, "Error fetching rating")
		return
	}

	httpresp.OK(c, "", rating)
}

func (h *RatingHandler) ForStore(c *gin.Context) {
	storeID, ok := pathID(c, "storeId")
	if !ok {
		return
	}

	ratings, err := h.forStore.Execute(c.Request.Context(), storeID)
	if err != nil {
		httperr.Respond(c, h.log, err, "Error fetching store ratings")
		return
	}

	httpresp.List(c, ratings)
}

func (h *RatingHandler) Count(c *gin.Context) {
	count, err := h.count.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err, "Error fetching ratings count")
		return
	}

	httpresp.OK(c, "", count)
}
