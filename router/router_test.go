package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"conference-webapp/config"
	"conference-webapp/database"
	"conference-webapp/handlers"
	"conference-webapp/model"
)

const missingId = "64b7f0c2a1b2c3d4e5f60718"

type Test struct {
	description  string
	method       string
	route        string
	bodyinput    []byte
	expectedCode int
	expectedBody string
}

func newTestApp(t *testing.T, cfg config.Config) (*fiber.App, *database.MemoryStore) {
	t.Helper()
	store := database.NewMemoryStore()
	log := zap.NewNop().Sugar()
	return New(handlers.New(store, log, cfg.Sign), cfg, log), store
}

func doRequest(t *testing.T, app *fiber.App, method, route string, bodyinput []byte, headers ...string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, route, bytes.NewBuffer(bodyinput))
	require.NoError(t, err)
	if bodyinput != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)

	body := new(strings.Builder)
	_, err = io.Copy(body, res.Body)
	if err != nil {
		assert.Fail(t, "Invalid test, error occured while body parsing")
	}
	return res, body.String()
}

func decode(t *testing.T, body string, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), out), body)
}

func createConference(t *testing.T, app *fiber.App, name string) model.Conference {
	t.Helper()
	res, body := doRequest(t, app, http.MethodPost, "/conference",
		[]byte(`{"name":"`+name+`","date":"2025-01-01","schedule":"9am"}`))
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var conf model.Conference
	decode(t, body, &conf)
	return conf
}

func TestCreateConference(t *testing.T) {
	tests := []Test{
		{
			description:  "public create",
			method:       http.MethodPost,
			route:        "/conference",
			bodyinput:    []byte(`{"name":"DevCon","date":"2025-01-01","schedule":"9am"}`),
			expectedCode: 200,
		},
		{
			description:  "admin create",
			method:       http.MethodPost,
			route:        "/admin/conference",
			bodyinput:    []byte(`{"name":"DevCon","date":"2025-01-01","schedule":"9am"}`),
			expectedCode: 200,
		},
	}

	for _, test := range tests {
		app, _ := newTestApp(t, config.Config{})
		res, body := doRequest(t, app, test.method, test.route, test.bodyinput)
		assert.Equalf(t, test.expectedCode, res.StatusCode, test.description)

		var raw map[string]json.RawMessage
		decode(t, body, &raw)
		assert.JSONEqf(t, `"DevCon"`, string(raw["name"]), test.description)
		assert.JSONEqf(t, `[]`, string(raw["feedback"]), test.description)

		var id string
		decode(t, string(raw["_id"]), &id)
		_, err := model.ParseID(id)
		assert.NoErrorf(t, err, test.description)
	}
}

func TestCreateConferenceWithoutFields(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})

	for _, bodyinput := range [][]byte{nil, []byte(`{}`)} {
		res, body := doRequest(t, app, http.MethodPost, "/conference", bodyinput)
		require.Equal(t, http.StatusOK, res.StatusCode)

		var conf model.Conference
		decode(t, body, &conf)
		assert.Empty(t, conf.Name)
		assert.Empty(t, conf.Date)
		assert.Empty(t, conf.Schedule)
		assert.Equal(t, []string{}, conf.Feedback)
	}
}

func TestListConferences(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})

	res, body := doRequest(t, app, http.MethodGet, "/conferences", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `[]`, body)

	first := createConference(t, app, "first")
	second := createConference(t, app, "second")

	res, body = doRequest(t, app, http.MethodGet, "/conferences", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var conferences []model.Conference
	decode(t, body, &conferences)
	require.Len(t, conferences, 2)
	assert.Equal(t, first, conferences[0])
	assert.Equal(t, second, conferences[1])
}

func TestUpdateConference(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})
	conf := createConference(t, app, "DevCon")

	res, body := doRequest(t, app, http.MethodPut, "/admin/conference/"+string(conf.Id),
		[]byte(`{"name":"DevCon 2"}`))
	require.Equal(t, http.StatusOK, res.StatusCode)

	var updated model.Conference
	decode(t, body, &updated)
	assert.Equal(t, conf.Id, updated.Id)
	assert.Equal(t, "DevCon 2", updated.Name)
	assert.Empty(t, updated.Date, "omitted fields are cleared")
	assert.Empty(t, updated.Schedule, "omitted fields are cleared")

	tests := []Test{
		{
			description:  "missing conference",
			method:       http.MethodPut,
			route:        "/admin/conference/" + missingId,
			bodyinput:    []byte(`{"name":"x"}`),
			expectedCode: 404,
			expectedBody: `{"message":"Conference not found"}`,
		},
		{
			description:  "malformed id",
			method:       http.MethodPut,
			route:        "/admin/conference/bad-id",
			bodyinput:    []byte(`{"name":"x"}`),
			expectedCode: 500,
			expectedBody: `{"message":"Error updating conference"}`,
		},
	}
	for _, test := range tests {
		res, body := doRequest(t, app, test.method, test.route, test.bodyinput)
		assert.Equalf(t, test.expectedCode, res.StatusCode, test.description)
		assert.JSONEqf(t, test.expectedBody, body, test.description)
	}
}

func TestDeleteConference(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})
	conf := createConference(t, app, "DevCon")

	tests := []Test{
		{
			description:  "existing conference",
			method:       http.MethodDelete,
			route:        "/admin/conference/" + string(conf.Id),
			expectedCode: 200,
			expectedBody: `{"message":"Conference deleted"}`,
		},
		{
			description:  "already deleted",
			method:       http.MethodDelete,
			route:        "/admin/conference/" + string(conf.Id),
			expectedCode: 404,
			expectedBody: `{"message":"Conference not found"}`,
		},
		{
			description:  "never existed",
			method:       http.MethodDelete,
			route:        "/admin/conference/" + missingId,
			expectedCode: 404,
			expectedBody: `{"message":"Conference not found"}`,
		},
		{
			description:  "malformed id",
			method:       http.MethodDelete,
			route:        "/admin/conference/bad-id",
			expectedCode: 500,
			expectedBody: `{"message":"Error deleting conference"}`,
		},
	}
	for _, test := range tests {
		res, body := doRequest(t, app, test.method, test.route, test.bodyinput)
		assert.Equalf(t, test.expectedCode, res.StatusCode, test.description)
		assert.JSONEqf(t, test.expectedBody, body, test.description)
	}

	_, body := doRequest(t, app, http.MethodGet, "/conferences", nil)
	assert.JSONEq(t, `[]`, body)
}

func TestSubmitFeedback(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})
	conf := createConference(t, app, "DevCon")

	feedback := []byte(`{"conferenceId":"` + string(conf.Id) + `","feedback":"great talk"}`)
	res, _ := doRequest(t, app, http.MethodPost, "/feedback", feedback)
	require.Equal(t, http.StatusOK, res.StatusCode)
	res, body := doRequest(t, app, http.MethodPost, "/feedback", feedback)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var updated model.Conference
	decode(t, body, &updated)
	assert.Equal(t, []string{"great talk", "great talk"}, updated.Feedback)
	assert.Equal(t, conf.Name, updated.Name)

	res, body = doRequest(t, app, http.MethodPost, "/feedback",
		[]byte(`{"conferenceId":"`+string(conf.Id)+`","feedback":""}`))
	require.Equal(t, http.StatusOK, res.StatusCode)
	decode(t, body, &updated)
	assert.Equal(t, []string{"great talk", "great talk", ""}, updated.Feedback)

	tests := []Test{
		{
			description:  "missing conference",
			method:       http.MethodPost,
			route:        "/feedback",
			bodyinput:    []byte(`{"conferenceId":"` + missingId + `","feedback":"lost"}`),
			expectedCode: 404,
			expectedBody: `{"message":"Conference not found"}`,
		},
		{
			description:  "malformed conference id",
			method:       http.MethodPost,
			route:        "/feedback",
			bodyinput:    []byte(`{"conferenceId":"bad-id","feedback":"lost"}`),
			expectedCode: 500,
			expectedBody: `{"message":"Error submitting feedback"}`,
		},
	}
	for _, test := range tests {
		res, body := doRequest(t, app, test.method, test.route, test.bodyinput)
		assert.Equalf(t, test.expectedCode, res.StatusCode, test.description)
		assert.JSONEqf(t, test.expectedBody, body, test.description)
	}
}

func TestRegister(t *testing.T) {
	app, store := newTestApp(t, config.Config{})
	id1, id2 := model.NewID(), model.NewID()

	res, body := doRequest(t, app, http.MethodPost, "/register",
		[]byte(`{"name":"Alice","email":"a@x.com","conferenceId":"`+string(id1)+`"}`))
	require.Equal(t, http.StatusOK, res.StatusCode)

	var first model.User
	decode(t, body, &first)
	assert.Equal(t, "Alice", first.Name)
	assert.Equal(t, []model.ID{id1}, first.Conferences)

	res, body = doRequest(t, app, http.MethodPost, "/register",
		[]byte(`{"name":"Alicia","email":"a@x.com","conferenceId":"`+string(id2)+`"}`))
	require.Equal(t, http.StatusOK, res.StatusCode)

	var second model.User
	decode(t, body, &second)
	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, "Alice", second.Name, "name is not updated on repeat registration")
	assert.Equal(t, []model.ID{id1, id2}, second.Conferences)

	res, body = doRequest(t, app, http.MethodPost, "/register",
		[]byte(`{"name":"Alice","email":"a@x.com","conferenceId":"`+string(id2)+`"}`))
	require.Equal(t, http.StatusOK, res.StatusCode)
	decode(t, body, &second)
	assert.Equal(t, []model.ID{id1, id2, id2}, second.Conferences)

	users, err := store.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)

	res, body = doRequest(t, app, http.MethodPost, "/register",
		[]byte(`{"name":"Bob","email":"b@x.com","conferenceId":"bad-id"}`))
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.JSONEq(t, `{"message":"Error registering user"}`, body)
}

func TestRegistrations(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})
	devcon := createConference(t, app, "DevCon")
	gocon := createConference(t, app, "GoCon")

	register := func(name, email string, confId model.ID) model.User {
		res, body := doRequest(t, app, http.MethodPost, "/register",
			[]byte(`{"name":"`+name+`","email":"`+email+`","conferenceId":"`+string(confId)+`"}`))
		require.Equal(t, http.StatusOK, res.StatusCode)
		var user model.User
		decode(t, body, &user)
		return user
	}
	alice := register("Alice", "a@x.com", gocon.Id)
	register("Alice", "a@x.com", devcon.Id)
	bob := register("Bob", "b@x.com", devcon.Id)

	res, body := doRequest(t, app, http.MethodGet, "/admin/registrations", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var registrations []model.Registration
	decode(t, body, &registrations)
	require.Len(t, registrations, 2)
	assert.Equal(t, alice.Id, registrations[0].Id)
	assert.Equal(t, []model.Conference{gocon, devcon}, registrations[0].Conferences)
	assert.Equal(t, bob.Id, registrations[1].Id)
	assert.Equal(t, []model.Conference{devcon}, registrations[1].Conferences)

	res, _ = doRequest(t, app, http.MethodDelete, "/admin/conference/"+string(devcon.Id), nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	_, body = doRequest(t, app, http.MethodGet, "/admin/registrations", nil)
	decode(t, body, &registrations)
	require.Len(t, registrations, 2)
	assert.Equal(t, []model.Conference{gocon}, registrations[0].Conferences)
	assert.Equal(t, []model.Conference{}, registrations[1].Conferences)
}

func TestDeleteRegistration(t *testing.T) {
	app, store := newTestApp(t, config.Config{})
	res, body := doRequest(t, app, http.MethodPost, "/register",
		[]byte(`{"name":"Alice","email":"a@x.com","conferenceId":"`+missingId+`"}`))
	require.Equal(t, http.StatusOK, res.StatusCode)
	var user model.User
	decode(t, body, &user)

	tests := []Test{
		{
			description:  "existing registration",
			method:       http.MethodDelete,
			route:        "/admin/registration/" + string(user.Id),
			expectedCode: 200,
			expectedBody: `{"message":"Registration deleted"}`,
		},
		{
			description:  "missing registration still succeeds",
			method:       http.MethodDelete,
			route:        "/admin/registration/" + missingId,
			expectedCode: 200,
			expectedBody: `{"message":"Registration deleted"}`,
		},
		{
			description:  "malformed id",
			method:       http.MethodDelete,
			route:        "/admin/registration/bad-id",
			expectedCode: 500,
			expectedBody: `{"message":"Error deleting registration"}`,
		},
	}
	for _, test := range tests {
		res, body := doRequest(t, app, test.method, test.route, test.bodyinput)
		assert.Equalf(t, test.expectedCode, res.StatusCode, test.description)
		assert.JSONEqf(t, test.expectedBody, body, test.description)
	}

	users, err := store.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestErrorHandler(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})

	tests := []Test{
		{
			description:  "malformed json body",
			method:       http.MethodPost,
			route:        "/conference",
			bodyinput:    []byte(`{"name":`),
			expectedCode: 500,
			expectedBody: "Something broke!",
		},
		{
			description:  "unknown route",
			method:       http.MethodGet,
			route:        "/nothing-here",
			expectedCode: 404,
		},
	}
	for _, test := range tests {
		res, body := doRequest(t, app, test.method, test.route, test.bodyinput)
		assert.Equalf(t, test.expectedCode, res.StatusCode, test.description)
		if test.expectedBody != "" {
			assert.Equalf(t, test.expectedBody, body, test.description)
		}
	}
}

func TestCommonHeaders(t *testing.T) {
	app, _ := newTestApp(t, config.Config{CORSOrigin: "*"})

	res, _ := doRequest(t, app, http.MethodGet, "/conferences", nil, fiber.HeaderOrigin, "http://example.com")
	assert.Equal(t, "*", res.Header.Get(fiber.HeaderAccessControlAllowOrigin))

	_, err := uuid.Parse(res.Header.Get(fiber.HeaderXRequestID))
	assert.NoError(t, err)
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})

	res, body := doRequest(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestBodyFieldTypes(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})
	conf := createConference(t, app, "DevCon")
	confId := string(conf.Id)

	tests := []Test{
		{
			description:  "numeric name is stored as text",
			method:       http.MethodPost,
			route:        "/conference",
			bodyinput:    []byte(`{"name":2025,"date":"2025-01-01","schedule":"9am"}`),
			expectedCode: 200,
		},
		{
			description:  "numeric update fields are stored as text",
			method:       http.MethodPut,
			route:        "/admin/conference/" + confId,
			bodyinput:    []byte(`{"name":"DevCon","date":20250101,"schedule":false}`),
			expectedCode: 200,
		},
		{
			description:  "numeric feedback is stored as text",
			method:       http.MethodPost,
			route:        "/feedback",
			bodyinput:    []byte(`{"conferenceId":"` + confId + `","feedback":5}`),
			expectedCode: 200,
		},
		{
			description:  "numeric conference id",
			method:       http.MethodPost,
			route:        "/feedback",
			bodyinput:    []byte(`{"conferenceId":5,"feedback":"x"}`),
			expectedCode: 500,
			expectedBody: `{"message":"Error submitting feedback"}`,
		},
		{
			description:  "object name",
			method:       http.MethodPost,
			route:        "/conference",
			bodyinput:    []byte(`{"name":{"first":"Dev"}}`),
			expectedCode: 500,
			expectedBody: `{"message":"Error creating conference"}`,
		},
		{
			description:  "array feedback",
			method:       http.MethodPost,
			route:        "/feedback",
			bodyinput:    []byte(`{"conferenceId":"` + confId + `","feedback":["a"]}`),
			expectedCode: 500,
			expectedBody: `{"message":"Error submitting feedback"}`,
		},
		{
			description:  "numeric registration conference id",
			method:       http.MethodPost,
			route:        "/register",
			bodyinput:    []byte(`{"name":"Alice","email":"a@x.com","conferenceId":5}`),
			expectedCode: 500,
			expectedBody: `{"message":"Error registering user"}`,
		},
		{
			description:  "feedback without conference id",
			method:       http.MethodPost,
			route:        "/feedback",
			bodyinput:    []byte(`{"feedback":"x"}`),
			expectedCode: 404,
			expectedBody: `{"message":"Conference not found"}`,
		},
		{
			description:  "feedback with null conference id",
			method:       http.MethodPost,
			route:        "/feedback",
			bodyinput:    []byte(`{"conferenceId":null,"feedback":"x"}`),
			expectedCode: 404,
			expectedBody: `{"message":"Conference not found"}`,
		},
	}

	for _, test := range tests {
		res, body := doRequest(t, app, test.method, test.route, test.bodyinput)
		assert.Equalf(t, test.expectedCode, res.StatusCode, test.description)
		assert.Equalf(t, fiber.MIMEApplicationJSON, res.Header.Get(fiber.HeaderContentType), test.description)
		if test.expectedBody != "" {
			assert.JSONEqf(t, test.expectedBody, body, test.description)
		}
	}

	_, body := doRequest(t, app, http.MethodGet, "/conferences", nil)
	var conferences []model.Conference
	decode(t, body, &conferences)
	require.Len(t, conferences, 2)
	assert.Equal(t, model.Conference{
		Id:       conf.Id,
		Name:     "DevCon",
		Date:     "20250101",
		Schedule: "false",
		Feedback: []string{"5"},
	}, conferences[0])
	assert.Equal(t, "2025", conferences[1].Name)
}

func TestBodyWithoutJSONContentType(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})

	res, body := doRequest(t, app, http.MethodPost, "/conference",
		[]byte(`{"name":"DevCon"}`), fiber.HeaderContentType, fiber.MIMETextPlain)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var conf model.Conference
	decode(t, body, &conf)
	assert.Empty(t, conf.Name, "body is ignored like an empty object")
	assert.Equal(t, []string{}, conf.Feedback)
}
