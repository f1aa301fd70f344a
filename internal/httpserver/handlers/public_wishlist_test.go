package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/filippkowalski/heywish/internal/domain"
)

func TestPublicWishlist_Get(t *testing.T) {
	t.Run("public list renders masked view", func(t *testing.T) {
		env := newTestEnv(t)
		holder := "cookie-1"
		name := "Grandma"
		env.wishes.wishes[1].ReservedBy = &holder
		env.wishes.wishes[1].ReserverName = &name

		req := httptest.NewRequest(http.MethodGet, "/public/wishlists/pub", nil)
		req.AddCookie(&http.Cookie{Name: reserverCookie, Value: "cookie-1"})
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
		}
		var view domain.PublicWishlistView
		if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if view.Wishlist.OwnerName != "Olivia" {
			t.Errorf("owner_name = %q, want Olivia", view.Wishlist.OwnerName)
		}
		if view.Wishlist.WishCount != 2 || view.Wishlist.ReservedCount != 1 {
			t.Errorf("counts = %d/%d, want 2/1", view.Wishlist.WishCount, view.Wishlist.ReservedCount)
		}
		for _, w := range view.Wishes {
			if w.ID == 1 && !w.ReservedByViewer {
				t.Error("cookie holder not recognized as reserver")
			}
		}
		if strings.Contains(rec.Body.String(), "Grandma") {
			t.Error("reserver name leaked into public response")
		}
		if strings.Contains(rec.Body.String(), "cookie-1") {
			t.Error("reserver identifier leaked into public response")
		}
	})

	t.Run("unknown token is 404", func(t *testing.T) {
		env := newTestEnv(t)
		req := httptest.NewRequest(http.MethodGet, "/public/wishlists/nope", nil)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("private token is indistinguishable from unknown", func(t *testing.T) {
		env := newTestEnv(t)

		privReq := httptest.NewRequest(http.MethodGet, "/public/wishlists/priv", nil)
		privRec := httptest.NewRecorder()
		env.router.ServeHTTP(privRec, privReq)

		unknownReq := httptest.NewRequest(http.MethodGet, "/public/wishlists/nope", nil)
		unknownRec := httptest.NewRecorder()
		env.router.ServeHTTP(unknownRec, unknownReq)

		if privRec.Code != http.StatusNotFound {
			t.Errorf("private status = %d, want 404", privRec.Code)
		}
		if privRec.Body.String() != unknownRec.Body.String() {
			t.Errorf("bodies differ: %q vs %q", privRec.Body, unknownRec.Body)
		}
	})
}

func TestPublicReserve(t *testing.T) {
	t.Run("reserves and sets cookie", func(t *testing.T) {
		env := newTestEnv(t)
		body := strings.NewReader(`{"wishId": 1, "reserverName": "Grandma"}`)
		req := httptest.NewRequest(http.MethodPost, "/public/wishlists/pub", body)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
		}

		var resp publicReserveResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if !resp.Success || resp.ReserverID == "" {
			t.Errorf("unexpected response: %+v", resp)
		}

		cookie := reserverCookieFrom(rec.Result())
		if cookie == nil {
			t.Fatal("reserver cookie not set")
		}
		if cookie.Value != resp.ReserverID {
			t.Errorf("cookie value %q != reserverId %q", cookie.Value, resp.ReserverID)
		}
		if !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode || cookie.Path != "/" {
			t.Errorf("cookie attributes wrong: %+v", cookie)
		}
		if cookie.MaxAge != reserverCookieMaxAge {
			t.Errorf("cookie max-age = %d, want %d", cookie.MaxAge, reserverCookieMaxAge)
		}

		if rb := env.wishes.wishes[1].ReservedBy; rb == nil || *rb != resp.ReserverID {
			t.Errorf("wish reserved_by = %v, want %q", rb, resp.ReserverID)
		}
	})

	t.Run("reuses existing cookie identity", func(t *testing.T) {
		env := newTestEnv(t)
		req := httptest.NewRequest(http.MethodPost, "/public/wishlists/pub", strings.NewReader(`{"wishId": 1}`))
		req.AddCookie(&http.Cookie{Name: reserverCookie, Value: "returning-visitor"})
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
		}
		var resp publicReserveResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
		if resp.ReserverID != "returning-visitor" {
			t.Errorf("reserverId = %q, want returning-visitor", resp.ReserverID)
		}
	})

	t.Run("missing wishId is 400", func(t *testing.T) {
		env := newTestEnv(t)
		req := httptest.NewRequest(http.MethodPost, "/public/wishlists/pub", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("second reserve is 400", func(t *testing.T) {
		env := newTestEnv(t)
		first := httptest.NewRequest(http.MethodPost, "/public/wishlists/pub", strings.NewReader(`{"wishId": 1}`))
		env.router.ServeHTTP(httptest.NewRecorder(), first)

		second := httptest.NewRequest(http.MethodPost, "/public/wishlists/pub", strings.NewReader(`{"wishId": 1}`))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, second)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400; body: %s", rec.Code, rec.Body)
		}
	})

	t.Run("wish from another list is 404", func(t *testing.T) {
		env := newTestEnv(t)
		req := httptest.NewRequest(http.MethodPost, "/public/wishlists/pub", strings.NewReader(`{"wishId": 3}`))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestPublicRelease(t *testing.T) {
	reserve := func(t *testing.T, env *testEnv, viewer string) {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/public/wishlists/pub", strings.NewReader(`{"wishId": 1}`))
		req.AddCookie(&http.Cookie{Name: reserverCookie, Value: viewer})
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("setup reserve failed: %d %s", rec.Code, rec.Body)
		}
	}

	t.Run("cookie holder releases", func(t *testing.T) {
		env := newTestEnv(t)
		reserve(t, env, "holder")

		req := httptest.NewRequest(http.MethodDelete, "/public/wishlists/pub?wishId=1", nil)
		req.AddCookie(&http.Cookie{Name: reserverCookie, Value: "holder"})
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
		}
		if env.wishes.wishes[1].ReservedBy != nil {
			t.Error("wish still reserved after release")
		}
	})

	t.Run("missing cookie is 403", func(t *testing.T) {
		env := newTestEnv(t)
		reserve(t, env, "holder")

		req := httptest.NewRequest(http.MethodDelete, "/public/wishlists/pub?wishId=1", nil)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("mismatched cookie is 403 and keeps the reservation", func(t *testing.T) {
		env := newTestEnv(t)
		reserve(t, env, "holder")

		req := httptest.NewRequest(http.MethodDelete, "/public/wishlists/pub?wishId=1", nil)
		req.AddCookie(&http.Cookie{Name: reserverCookie, Value: "intruder"})
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
		if env.wishes.wishes[1].ReservedBy == nil {
			t.Error("reservation lost to a mismatched release")
		}
	})

	t.Run("missing wishId is 400", func(t *testing.T) {
		env := newTestEnv(t)
		req := httptest.NewRequest(http.MethodDelete, "/public/wishlists/pub", nil)
		req.AddCookie(&http.Cookie{Name: reserverCookie, Value: "holder"})
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("header identity works for non-browser clients", func(t *testing.T) {
		env := newTestEnv(t)
		reserve(t, env, "holder")

		req := httptest.NewRequest(http.MethodDelete, "/public/wishlists/pub?wishId=1", nil)
		req.Header.Set("X-Reserver-ID", "holder")
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200; body: %s", rec.Code, rec.Body)
		}
	})
}
