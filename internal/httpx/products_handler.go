package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starboy1402/garments-tracker-api/internal/products"
	"github.com/starboy1402/garments-tracker-api/internal/redisx"
	"github.com/starboy1402/garments-tracker-api/internal/users"
)

func (a *API) listProducts(w http.ResponseWriter, r *http.Request) {
	list, err := a.Products.List(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}
	if list == nil {
		list = []products.Product{}
	}
	writeJSON(w, http.StatusOK, list)
}

// listHomeProducts serves the landing page; the featured set changes rarely
// and is read on every visit, so it is cached in Redis.
func (a *API) listHomeProducts(w http.ResponseWriter, r *http.Request) {
	if a.Redis != nil {
		if s, err := a.Redis.Get(r.Context(), redisx.KeyHomeProducts).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(s))
			return
		}
	}

	list, err := a.Products.ListHome(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}
	if list == nil {
		list = []products.Product{}
	}
	b, _ := json.Marshal(list)
	if a.Redis != nil {
		_ = a.Redis.Set(r.Context(), redisx.KeyHomeProducts, b, redisx.TTLHomeProducts).Err()
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}

func (a *API) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := a.Products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, products.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "product not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *API) listManagerProducts(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	list, err := a.Products.ListByCreator(r.Context(), u.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}
	if list == nil {
		list = []products.Product{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) createProduct(w http.ResponseWriter, r *http.Request) {
	var in products.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json")
		return
	}
	if errs := in.Validate(); errs != nil {
		writeValidation(w, errs)
		return
	}
	u, _ := UserFromContext(r.Context())
	p, err := a.Products.Create(r.Context(), in, u.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to create product")
		return
	}
	a.invalidateHomeCache(r.Context())
	writeJSON(w, http.StatusCreated, p)
}

// canEdit: a manager may touch only products they created; admin may touch
// any.
func canEdit(u users.User, p products.Product) bool {
	return u.Role == users.RoleAdmin || p.CreatedBy == u.ID
}

func (a *API) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in products.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json")
		return
	}
	if errs := in.Validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	existing, err := a.Products.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, products.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "product not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}
	u, _ := UserFromContext(r.Context())
	if !canEdit(u, existing) {
		writeMessage(w, http.StatusForbidden, "you can only edit your own products")
		return
	}

	p, err := a.Products.Update(r.Context(), id, in)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to update product")
		return
	}
	a.invalidateHomeCache(r.Context())
	writeJSON(w, http.StatusOK, p)
}

func (a *API) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := a.Products.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, products.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "product not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}
	u, _ := UserFromContext(r.Context())
	if !canEdit(u, existing) {
		writeMessage(w, http.StatusForbidden, "you can only delete your own products")
		return
	}
	if err := a.Products.Delete(r.Context(), id); err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	a.invalidateHomeCache(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *API) toggleHomeProduct(w http.ResponseWriter, r *http.Request) {
	v, err := a.Products.ToggleHome(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, products.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "product not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "failed to update product")
		return
	}
	a.invalidateHomeCache(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"showOnHome": v})
}

func (a *API) invalidateHomeCache(ctx context.Context) {
	if a.Redis != nil {
		_ = a.Redis.Del(ctx, redisx.KeyHomeProducts).Err()
	}
}
