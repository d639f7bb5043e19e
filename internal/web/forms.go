package web

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/vbonduro/campista/internal/domain"
)

// newCampsiteFromForm builds a creation payload the way the campsite form
// submits it: absent or empty optional fields become nil.
func newCampsiteFromForm(form url.Values) (domain.NewCampsite, error) {
	nc := domain.NewCampsite{Name: strings.TrimSpace(form.Get("name"))}

	optText := func(key string) *string {
		v := strings.TrimSpace(form.Get(key))
		if v == "" {
			return nil
		}
		return &v
	}
	nc.Description = optText("description")
	nc.DateVisited = optText("date_visited")
	nc.City = optText("city")
	nc.State = optText("state")
	nc.Country = optText("country")
	nc.Notes = optText("notes")

	if v := strings.TrimSpace(form.Get("rating")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nc, domain.Validationf("invalid number for rating")
		}
		nc.Rating = &n
	}
	var err error
	if nc.Lat, err = optFloat(form, "lat"); err != nil {
		return nc, err
	}
	if nc.Lng, err = optFloat(form, "lng"); err != nil {
		return nc, err
	}

	return nc, nil
}

func optFloat(form url.Values, key string) (*float64, error) {
	v := strings.TrimSpace(form.Get(key))
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, domain.Validationf("invalid number for %s", key)
	}
	return &f, nil
}

// patchFromForm maps submitted form fields onto a tri-state patch: a key
// absent from the submission is unset, a key present but empty clears, and a
// numeric key with non-numeric content fails validation before any write.
func patchFromForm(form url.Values) (domain.CampsitePatch, error) {
	var patch domain.CampsitePatch

	text := func(key string) domain.Field[string] {
		if !form.Has(key) {
			return domain.Unset[string]()
		}
		v := strings.TrimSpace(form.Get(key))
		if v == "" {
			return domain.Clear[string]()
		}
		return domain.Set(v)
	}

	patch.Name = text("name")
	patch.Description = text("description")
	patch.DateVisited = text("date_visited")
	patch.City = text("city")
	patch.State = text("state")
	patch.Country = text("country")
	patch.Notes = text("notes")

	if form.Has("rating") {
		v := strings.TrimSpace(form.Get("rating"))
		if v == "" {
			patch.Rating = domain.Clear[int]()
		} else {
			n, err := strconv.Atoi(v)
			if err != nil {
				return patch, domain.Validationf("invalid number for rating")
			}
			patch.Rating = domain.Set(n)
		}
	}

	float := func(key string) (domain.Field[float64], error) {
		if !form.Has(key) {
			return domain.Unset[float64](), nil
		}
		v := strings.TrimSpace(form.Get(key))
		if v == "" {
			return domain.Clear[float64](), nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.Unset[float64](), domain.Validationf("invalid number for %s", key)
		}
		return domain.Set(f), nil
	}

	var err error
	if patch.Lat, err = float("lat"); err != nil {
		return patch, err
	}
	if patch.Lng, err = float("lng"); err != nil {
		return patch, err
	}

	return patch, nil
}
