package handlers

import (
	"net/http"
	"testing"

	"portal/database/repository/memory"
	"portal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newReviewEnv(t *testing.T) (*testEnv, *memory.ReviewRepo, *countingRefresher, []models.Review) {
	env := newTestEnv(t)
	serviceID := primitive.NewObjectID().Hex()
	seed := []models.Review{
		{ID: primitive.NewObjectID(), ServiceID: serviceID, ReviewerEmail: "r@x.com", Rating: 4, Text: "Solid work"},
		{ID: primitive.NewObjectID(), ServiceID: serviceID, ReviewerEmail: "s@x.com", Rating: 2, Text: "Late"},
	}
	repo := memory.NewReviewRepo(seed...)
	refresher := &countingRefresher{}
	h := &ReviewHandler{Repo: repo, Authz: env.gate, Stats: refresher}

	env.router.GET("/api/reviews/:email", env.gate.VerifyToken(), env.gate.RequireOwnerParam("email"), h.GetReviewsByReviewer)
	env.router.GET("/api/reviews/service/:serviceId", h.GetReviewsByService)
	env.router.POST("/api/reviews", env.gate.VerifyToken(), h.CreateReview)
	env.router.PATCH("/api/reviews/:id", env.gate.VerifyToken(), h.UpdateReview)
	env.router.DELETE("/api/reviews/:id", env.gate.VerifyToken(), h.DeleteReview)
	return env, repo, refresher, seed
}

func TestGetReviewsByReviewer(t *testing.T) {
	env, _, _, _ := newReviewEnv(t)

	w := env.do(http.MethodGet, "/api/reviews/r@x.com", nil, env.sessionCookie(t, "r@x.com"))
	require.Equal(t, http.StatusOK, w.Code)
	reviews := decode[[]models.Review](t, w)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Solid work", reviews[0].Text)

	w = env.do(http.MethodGet, "/api/reviews/r@x.com", nil, env.sessionCookie(t, "R@x.com"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetReviewsByService(t *testing.T) {
	env, _, _, seed := newReviewEnv(t)

	w := env.do(http.MethodGet, "/api/reviews/service/"+seed[0].ServiceID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Review](t, w), 2)

	w = env.do(http.MethodGet, "/api/reviews/service/"+primitive.NewObjectID().Hex(), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCreateReview(t *testing.T) {
	env, repo, refresher, _ := newReviewEnv(t)
	body := map[string]interface{}{
		"serviceId":     primitive.NewObjectID().Hex(),
		"reviewerEmail": "r@x.com",
		"rating":        5,
		"text":          "Great",
	}

	w := env.do(http.MethodPost, "/api/reviews", body, env.sessionCookie(t, "r@x.com"))

	require.Equal(t, http.StatusCreated, w.Code)
	result := decode[models.InsertResult](t, w)
	assert.True(t, result.Acknowledged)
	n, _ := repo.Count(testContext(t))
	assert.Equal(t, int64(3), n)
	assert.Equal(t, 1, refresher.calls)
}

func TestCreateReview_Rejections(t *testing.T) {
	env, _, _, _ := newReviewEnv(t)
	valid := func() map[string]interface{} {
		return map[string]interface{}{
			"serviceId":     primitive.NewObjectID().Hex(),
			"reviewerEmail": "r@x.com",
			"rating":        5,
			"text":          "Great",
		}
	}
	cookie := env.sessionCookie(t, "r@x.com")

	badRating := valid()
	badRating["rating"] = 6
	w := env.do(http.MethodPost, "/api/reviews", badRating, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	badService := valid()
	badService["serviceId"] = "123"
	w = env.do(http.MethodPost, "/api/reviews", badService, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ServiceID must be a valid id", messageOf(t, w))

	w = env.do(http.MethodPost, "/api/reviews", valid(), env.sessionCookie(t, "s@x.com"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateReview(t *testing.T) {
	env, repo, _, seed := newReviewEnv(t)
	id := seed[0].ID.Hex()

	w := env.do(http.MethodPatch, "/api/reviews/"+id, map[string]interface{}{"rating": 5}, env.sessionCookie(t, "r@x.com"))

	require.Equal(t, http.StatusOK, w.Code)
	stored, err := repo.GetByID(testContext(t), id)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Rating)
	assert.Equal(t, "Solid work", stored.Text)
}

func TestUpdateReview_Rejections(t *testing.T) {
	env, _, _, seed := newReviewEnv(t)
	id := seed[0].ID.Hex()
	owner := env.sessionCookie(t, "r@x.com")

	w := env.do(http.MethodPatch, "/api/reviews/"+id, map[string]interface{}{}, owner)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPatch, "/api/reviews/"+id, map[string]interface{}{"rating": 0}, owner)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPatch, "/api/reviews/zzz", map[string]interface{}{"text": "x"}, owner)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid review ID", messageOf(t, w))

	w = env.do(http.MethodPatch, "/api/reviews/zzz", map[string]interface{}{}, owner)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid review ID", messageOf(t, w))

	w = env.do(http.MethodPatch, "/api/reviews/"+primitive.NewObjectID().Hex(), map[string]interface{}{"text": "x"}, owner)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPatch, "/api/reviews/"+id, map[string]interface{}{"text": "x"}, env.sessionCookie(t, "s@x.com"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteReview(t *testing.T) {
	env, _, refresher, seed := newReviewEnv(t)
	path := "/api/reviews/" + seed[1].ID.Hex()
	owner := env.sessionCookie(t, "s@x.com")

	w := env.do(http.MethodDelete, path, nil, owner)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Review deleted","deletedCount":1}`, w.Body.String())

	w = env.do(http.MethodDelete, path, nil, owner)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, refresher.calls)
}
