//go:build integration

package integration

import (
	"net/http"
	"sync"
	"testing"

	"github.com/bissquit/job-board/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_RegisterLoginMe(t *testing.T) {
	forEachBackend(t, func(t *testing.T, client *testutil.Client) {
		email := testutil.RandomEmail("flow")
		password := "password123"

		resp, err := client.POST("/register", map[string]string{"email": email, "password": password})
		require.NoError(t, err)
		testutil.RequireStatus(t, resp, http.StatusOK)
		assert.NotEmpty(t, resp.Header.Get("Authorization"))

		var registered struct {
			Token   string `json:"token"`
			NewUser struct {
				ID       string `json:"id"`
				Email    string `json:"email"`
				Password string `json:"password"`
			} `json:"newUser"`
		}
		testutil.DecodeJSON(t, resp, &registered)
		assert.Equal(t, email, registered.NewUser.Email)
		assert.NotEqual(t, password, registered.NewUser.Password)
		assert.NotEmpty(t, registered.NewUser.ID)

		resp, err = client.POST("/login", map[string]string{"email": email, "password": password})
		require.NoError(t, err)
		testutil.RequireStatus(t, resp, http.StatusOK)

		var loggedIn struct {
			Token string `json:"token"`
			User  struct {
				ID string `json:"id"`
			} `json:"user"`
		}
		testutil.DecodeJSON(t, resp, &loggedIn)
		assert.Equal(t, registered.NewUser.ID, loggedIn.User.ID)

		resp, err = client.WithToken(loggedIn.Token).GET("/me")
		require.NoError(t, err)
		testutil.RequireStatus(t, resp, http.StatusOK)

		var me map[string]interface{}
		testutil.DecodeJSON(t, resp, &me)
		assert.Equal(t, email, me["email"])
		assert.NotContains(t, me, "password")
	})
}

func TestAuth_DuplicateRegistration(t *testing.T) {
	forEachBackend(t, func(t *testing.T, client *testutil.Client) {
		email := testutil.RandomEmail("dup")
		creds := map[string]string{"email": email, "password": "password123"}

		resp, err := client.POST("/register", creds)
		require.NoError(t, err)
		testutil.RequireStatus(t, resp, http.StatusOK)
		_ = resp.Body.Close()

		resp, err = client.POST("/register", creds)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestAuth_ConcurrentRegistrationSingleWinner(t *testing.T) {
	forEachBackend(t, func(t *testing.T, client *testutil.Client) {
		raw := client.WithoutValidation()
		email := testutil.RandomEmail("race")

		const attempts = 8
		codes := make([]int, attempts)

		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				resp, err := raw.POST("/register", map[string]string{"email": email, "password": "password123"})
				if err != nil {
					return
				}
				codes[i] = resp.StatusCode
				_ = resp.Body.Close()
			}(i)
		}
		wg.Wait()

		var ok int
		for _, code := range codes {
			if code == http.StatusOK {
				ok++
			} else {
				assert.Equal(t, http.StatusBadRequest, code)
			}
		}
		assert.Equal(t, 1, ok)
	})
}

func TestAuth_InvalidCredentialsAreUniform(t *testing.T) {
	forEachBackend(t, func(t *testing.T, client *testutil.Client) {
		email := testutil.RandomEmail("uniform")
		client.Register(t, email, "password123")

		resp, err := client.POST("/login", map[string]string{"email": email, "password": "wrong"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		wrongPassword := testutil.ReadBody(t, resp)

		resp, err = client.POST("/login", map[string]string{"email": testutil.RandomEmail("ghost"), "password": "wrong"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		unknownEmail := testutil.ReadBody(t, resp)

		assert.Equal(t, wrongPassword, unknownEmail)
	})
}

func TestAuth_ProtectedRouteRejectsBadTokens(t *testing.T) {
	forEachBackend(t, func(t *testing.T, client *testutil.Client) {
		for _, token := range []string{"", "garbage", "eyJhbGciOiJIUzI1NiJ9.e30.x"} {
			resp, err := client.WithToken(token).POST("/jobs", map[string]interface{}{
				"title": "t", "description": "d", "company": "c", "location": "l", "salary": 1,
			})
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.JSONEq(t, `{"error":{"message":"unauthorized"}}`, testutil.ReadBody(t, resp))
		}
	})
}
