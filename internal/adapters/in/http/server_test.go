package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"carrierlink/cmd"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type profileBody struct {
	ID          int64  `json:"id"`
	Handle      string `json:"handle"`
	Name        string `json:"name"`
	Rating      *int   `json:"rating"`
	ReviewCount int    `json:"reviewCount"`
	Role        string `json:"role"`
}

type deliveryBody struct {
	ID          string       `json:"id"`
	SenderID    int64        `json:"senderId"`
	CarrierID   *int64       `json:"carrierId"`
	Status      string       `json:"status"`
	PackageSize string       `json:"packageSize"`
	Sender      *profileBody `json:"sender"`
	Carrier     *profileBody `json:"carrier"`
	Counterpart *profileBody `json:"counterpart"`
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (b errorBody) fields() []string {
	out := make([]string, 0, len(b.Errors))
	for _, e := range b.Errors {
		out = append(out, e.Field)
	}
	return out
}

type account struct {
	profile profileBody
	token   string
}

type ServerSuite struct {
	suite.Suite
	root *cmd.CompositionRoot
	e    *echo.Echo
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	root, err := cmd.NewCompositionRoot(cmd.Config{
		DBDriver:    cmd.DriverMemory,
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
		BcryptCost:  bcrypt.MinCost,
		AcceptRoles: "carrier,both",
	}, slog.New(slog.DiscardHandler))
	s.Require().NoError(err)

	e, err := root.CreateRouter()
	s.Require().NoError(err)

	s.root, s.e = root, e
}

func (s *ServerSuite) TearDownTest() {
	s.Require().NoError(s.root.Close())
}

func (s *ServerSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *ServerSuite) decode(rec *httptest.ResponseRecorder, dst any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func (s *ServerSuite) expectError(rec *httptest.ResponseRecorder, code int) errorBody {
	s.Require().Equal(code, rec.Code, rec.Body.String())
	var body errorBody
	s.decode(rec, &body)
	s.Equal(code, body.Code)
	s.NotEmpty(body.Message)
	return body
}

func (s *ServerSuite) signUp(handle, role string) account {
	rec := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"handle": handle, "password": "password123", "name": strings.ToUpper(handle), "role": role,
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"handle": handle, "password": "password123",
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		Token     string      `json:"token"`
		ExpiresAt time.Time   `json:"expiresAt"`
		User      profileBody `json:"user"`
	}
	s.decode(rec, &login)
	s.Require().NotEmpty(login.Token)
	s.True(login.ExpiresAt.After(time.Now()))
	return account{profile: login.User, token: login.Token}
}

func (s *ServerSuite) postDelivery(sender account) deliveryBody {
	rec := s.do(http.MethodPost, "/api/v1/deliveries", sender.token, map[string]any{
		"pickupLocation": "Pune",
		"dropLocation":   "Mumbai",
		"packageSize":    "medium",
		"packageWeight":  3500,
		"preferredDate":  "2024-06-01",
		"timeWindow":     "09:00-12:00",
		"deliveryFee":    30000,
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var d deliveryBody
	s.decode(rec, &d)
	return d
}

func (s *ServerSuite) setStatus(id string, actor account, status string) *httptest.ResponseRecorder {
	return s.do(http.MethodPut, "/api/v1/deliveries/"+id+"/status", actor.token, map[string]string{"status": status})
}

func (s *ServerSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerSuite) TestRegisterAndLogin() {
	alice := s.signUp("alice", "sender")

	s.Equal("alice", alice.profile.Handle)
	s.Equal("ALICE", alice.profile.Name)
	s.Equal("sender", alice.profile.Role)
	s.Nil(alice.profile.Rating)
	s.Positive(alice.profile.ID)
}

func (s *ServerSuite) TestRegisterRejectsDuplicateHandle() {
	s.signUp("alice", "sender")

	rec := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"handle": "alice", "password": "password123", "name": "Other", "role": "carrier",
	})
	s.expectError(rec, http.StatusConflict)
}

func (s *ServerSuite) TestRegisterValidation() {
	rec := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{})
	body := s.expectError(rec, http.StatusBadRequest)
	s.ElementsMatch([]string{"handle", "password", "name", "role"}, body.fields())

	rec = s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"handle": "alice", "password": "short", "name": "Alice", "role": "admin",
	})
	body = s.expectError(rec, http.StatusBadRequest)
	s.ElementsMatch([]string{"password", "role"}, body.fields())
}

func (s *ServerSuite) TestMalformedBody() {
	rec := s.do(http.MethodPost, "/api/v1/auth/register", "", "{not json")
	s.expectError(rec, http.StatusBadRequest)
}

func (s *ServerSuite) TestLoginFailuresAreForbidden() {
	s.signUp("alice", "sender")

	rec := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"handle": "alice", "password": "wrong-password"})
	wrongPassword := s.expectError(rec, http.StatusForbidden)

	rec = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"handle": "nobody", "password": "password123"})
	unknownHandle := s.expectError(rec, http.StatusForbidden)

	s.Equal(wrongPassword.Message, unknownHandle.Message)
}

func (s *ServerSuite) TestProtectedRoutesRequireToken() {
	rec := s.do(http.MethodPost, "/api/v1/deliveries", "", map[string]any{})
	s.expectError(rec, http.StatusUnauthorized)

	rec = s.do(http.MethodGet, "/api/v1/me/deliveries?as=sender", "not-a-token", nil)
	s.expectError(rec, http.StatusUnauthorized)
}

func (s *ServerSuite) TestCreateDeliveryValidation() {
	alice := s.signUp("alice", "sender")

	rec := s.do(http.MethodPost, "/api/v1/deliveries", alice.token, map[string]any{
		"packageSize":   "huge",
		"packageWeight": 0,
		"deliveryFee":   -1,
	})
	body := s.expectError(rec, http.StatusBadRequest)
	s.Subset(body.fields(), []string{"pickupLocation", "dropLocation", "packageSize"})
}

func (s *ServerSuite) TestFullLifecycle() {
	alice := s.signUp("alice", "sender")
	bob := s.signUp("bob", "carrier")

	created := s.postDelivery(alice)
	s.Equal("requested", created.Status)
	s.Equal(alice.profile.ID, created.SenderID)
	s.Nil(created.CarrierID)

	rec := s.do(http.MethodGet, "/api/v1/deliveries", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var board []deliveryBody
	s.decode(rec, &board)
	s.Require().Len(board, 1)
	s.Require().NotNil(board[0].Sender)
	s.Equal("alice", board[0].Sender.Handle)

	rec = s.setStatus(created.ID, bob, "accepted")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var accepted deliveryBody
	s.decode(rec, &accepted)
	s.Equal("accepted", accepted.Status)
	s.Require().NotNil(accepted.CarrierID)
	s.Equal(bob.profile.ID, *accepted.CarrierID)

	s.expectError(s.setStatus(created.ID, alice, "picked"), http.StatusForbidden)
	s.Require().Equal(http.StatusOK, s.setStatus(created.ID, bob, "picked").Code)
	s.Require().Equal(http.StatusOK, s.setStatus(created.ID, bob, "delivered").Code)
	s.expectError(s.setStatus(created.ID, bob, "delivered"), http.StatusConflict)

	rec = s.do(http.MethodGet, "/api/v1/deliveries/"+created.ID, "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var detail deliveryBody
	s.decode(rec, &detail)
	s.Equal("delivered", detail.Status)
	s.Require().NotNil(detail.Carrier)
	s.Equal("bob", detail.Carrier.Handle)

	reviewPath := "/api/v1/deliveries/" + created.ID + "/reviews"
	rec = s.do(http.MethodPost, reviewPath, alice.token, map[string]any{"revieweeId": bob.profile.ID, "rating": 9})
	outOfRange := s.expectError(rec, http.StatusBadRequest)
	s.Equal("validation failed", outOfRange.Message)
	s.Require().Len(outOfRange.Errors, 1)
	s.Equal("rating", outOfRange.Errors[0].Field)
	s.Equal("must be between 1 and 5", outOfRange.Errors[0].Message)

	rec = s.do(http.MethodPost, reviewPath, alice.token, map[string]any{
		"revieweeId": bob.profile.ID, "rating": 5, "comment": "on time",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var reviewed struct {
		Review   struct{ Rating int } `json:"review"`
		Reviewee profileBody          `json:"reviewee"`
	}
	s.decode(rec, &reviewed)
	s.Equal(5, reviewed.Review.Rating)
	s.Require().NotNil(reviewed.Reviewee.Rating)
	s.Equal(5, *reviewed.Reviewee.Rating)
	s.Equal(1, reviewed.Reviewee.ReviewCount)

	rec = s.do(http.MethodPost, reviewPath, alice.token, map[string]any{"revieweeId": bob.profile.ID, "rating": 4})
	s.expectError(rec, http.StatusConflict)

	rec = s.do(http.MethodPost, reviewPath, bob.token, map[string]any{"revieweeId": alice.profile.ID, "rating": 4})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d", alice.profile.ID), "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var aliceProfile profileBody
	s.decode(rec, &aliceProfile)
	s.Require().NotNil(aliceProfile.Rating)
	s.Equal(4, *aliceProfile.Rating)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/reviews", bob.profile.ID), "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var bobReviews []struct {
		Rating   int `json:"rating"`
		Reviewer struct {
			Handle string `json:"handle"`
		} `json:"reviewer"`
	}
	s.decode(rec, &bobReviews)
	s.Require().Len(bobReviews, 1)
	s.Equal("alice", bobReviews[0].Reviewer.Handle)

	rec = s.do(http.MethodGet, "/api/v1/me/deliveries?as=carrier", bob.token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var carried []deliveryBody
	s.decode(rec, &carried)
	s.Require().Len(carried, 1)
	s.Require().NotNil(carried[0].Counterpart)
	s.Equal("alice", carried[0].Counterpart.Handle)

	rec = s.do(http.MethodGet, "/api/v1/stats/deliveries", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var stats struct {
		ByStatus map[string]int `json:"byStatus"`
		Total    int            `json:"total"`
	}
	s.decode(rec, &stats)
	s.Equal(1, stats.Total)
	s.Equal(1, stats.ByStatus["delivered"])
	s.Equal(0, stats.ByStatus["requested"])
}

func (s *ServerSuite) TestSenderCannotAccept() {
	alice := s.signUp("alice", "sender")
	carol := s.signUp("carol", "sender")
	created := s.postDelivery(alice)

	s.expectError(s.setStatus(created.ID, alice, "accepted"), http.StatusForbidden)
	s.expectError(s.setStatus(created.ID, carol, "accepted"), http.StatusForbidden)

	body := s.expectError(s.setStatus(created.ID, alice, "requested"), http.StatusBadRequest)
	s.Equal([]string{"status"}, body.fields())
}

func (s *ServerSuite) TestReviewBeforeDelivery() {
	alice := s.signUp("alice", "sender")
	bob := s.signUp("bob", "carrier")
	created := s.postDelivery(alice)
	s.Require().Equal(http.StatusOK, s.setStatus(created.ID, bob, "accepted").Code)

	rec := s.do(http.MethodPost, "/api/v1/deliveries/"+created.ID+"/reviews", alice.token,
		map[string]any{"revieweeId": bob.profile.ID, "rating": 5})
	s.expectError(rec, http.StatusConflict)

	rec = s.do(http.MethodPost, "/api/v1/deliveries/"+created.ID+"/reviews", alice.token,
		map[string]any{"rating": 5})
	body := s.expectError(rec, http.StatusBadRequest)
	s.Equal([]string{"revieweeId"}, body.fields())
}

func (s *ServerSuite) TestNotFoundAndBadIDs() {
	s.expectError(s.do(http.MethodGet, "/api/v1/deliveries/6ba7b810-9dad-11d1-80b4-00c04fd430c8", "", nil), http.StatusNotFound)
	s.expectError(s.do(http.MethodGet, "/api/v1/deliveries/not-a-uuid", "", nil), http.StatusBadRequest)
	s.expectError(s.do(http.MethodGet, "/api/v1/users/999", "", nil), http.StatusNotFound)
	s.expectError(s.do(http.MethodGet, "/api/v1/users/999/reviews", "", nil), http.StatusNotFound)
	s.expectError(s.do(http.MethodGet, "/api/v1/users/abc", "", nil), http.StatusBadRequest)
}

func (s *ServerSuite) TestListFiltersAreValidated() {
	body := s.expectError(s.do(http.MethodGet, "/api/v1/deliveries?status=lost", "", nil), http.StatusBadRequest)
	s.Equal([]string{"status"}, body.fields())

	body = s.expectError(s.do(http.MethodGet, "/api/v1/deliveries?packageSize=huge", "", nil), http.StatusBadRequest)
	s.Equal([]string{"packageSize"}, body.fields())

	alice := s.signUp("alice", "sender")
	body = s.expectError(s.do(http.MethodGet, "/api/v1/me/deliveries?as=owner", alice.token, nil), http.StatusBadRequest)
	s.Equal([]string{"as"}, body.fields())
}

func (s *ServerSuite) TestListingsNeverExposeSecrets() {
	alice := s.signUp("alice", "sender")
	s.postDelivery(alice)

	for _, path := range []string{
		"/api/v1/deliveries",
		fmt.Sprintf("/api/v1/users/%d", alice.profile.ID),
	} {
		rec := s.do(http.MethodGet, path, "", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		body := strings.ToLower(rec.Body.String())
		s.NotContains(body, "secret")
		s.NotContains(body, "password")
		s.NotContains(body, "$2a$")
	}
}

func (s *ServerSuite) TestOpenAPIDescription() {
	rec := s.do(http.MethodGet, "/openapi.json", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rec.Body.Bytes())
	s.Require().NoError(err)
	s.Require().NoError(doc.Validate(loader.Context))
	s.NotNil(doc.Paths.Find("/api/v1/deliveries/{id}/status"))
}
