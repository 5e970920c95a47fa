package web

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/bookshelf-web/internal/model"
	"github.com/bookshelf-web/internal/session"
	"github.com/bookshelf-web/internal/stats"
)

// previewCookie remembers the optimistic local preview so the profile
// page keeps showing it regardless of upload outcome.
const previewCookie = "profile_preview"

const placeholderImage = "https://via.placeholder.com/128"

const maxUploadBytes = 10 << 20

type profilePage struct {
	basePage
	Profile   *model.Profile
	ImageURL  string
	BookCount int
	Weekdays  []string
	Progress  map[string]int
}

// Profile renders the profile view. The profile and the book list are
// fetched concurrently and land in independent state: a failed book
// fetch zeroes the count and histogram, while a failed profile fetch
// surfaces the error and sends the user back to the landing page.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	token, _ := session.Token(r)

	var (
		wg       sync.WaitGroup
		prof     *model.Profile
		profErr  error
		books    []model.Book
		booksErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		prof, profErr = h.api.GetProfile(r.Context(), token)
	}()
	go func() {
		defer wg.Done()
		books, booksErr = h.api.ListBooks(r.Context(), token)
	}()
	wg.Wait()

	if profErr != nil {
		h.redirectFlash(w, r, "/", flashError, errMessage(profErr, "Failed to load profile"))
		return
	}
	if booksErr != nil {
		books = nil
	}

	imageURL := prof.ImageURL
	if c, err := r.Cookie(previewCookie); err == nil && c.Value != "" {
		imageURL = "/previews/" + c.Value
	}
	if imageURL == "" {
		imageURL = placeholderImage
	}

	h.render(w, "profile", profilePage{
		basePage:  basePage{Title: "Profile", Claims: claims, Flash: popFlash(w, r)},
		Profile:   prof,
		ImageURL:  imageURL,
		BookCount: len(books),
		Weekdays:  stats.Weekdays,
		Progress:  stats.WeeklyProgress(books),
	})
}

// UploadProfileImage stores an immediate local preview of the selected
// image and forwards the upload to the API. On failure the preview
// keeps masking the profile image, but only as long as the spooled file
// lives; on success the cookie is dropped so the server's image is
// authoritative again.
func (h *Handler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	token, _ := session.Token(r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.redirectFlash(w, r, "/profile", flashError, "Invalid upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		// No file selected; nothing to do.
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.redirectFlash(w, r, "/profile", flashError, "Invalid upload")
		return
	}

	previewName := ""
	if name, err := h.previews.Save(header.Filename, bytes.NewReader(data)); err != nil {
		h.log.Warnw("save preview", "error", err)
	} else {
		previewName = name
	}

	if err := h.api.UploadProfileImage(r.Context(), token, header.Filename, bytes.NewReader(data)); err != nil {
		if previewName != "" {
			http.SetCookie(w, &http.Cookie{
				Name:     previewCookie,
				Value:    previewName,
				Path:     "/",
				MaxAge:   int(h.previewTTL.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		h.redirectFlash(w, r, "/profile", flashError, errMessage(err, "Upload failed"))
		return
	}

	clearPreviewCookie(w)
	h.redirectFlash(w, r, "/profile", flashSuccess, "Profile image uploaded!")
}

func clearPreviewCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     previewCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ServePreview serves one spooled preview image by name. Only single
// file names are routable, so the spool directory cannot be listed.
func (h *Handler) ServePreview(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(r.PathValue("name"))
	http.ServeFile(w, r, filepath.Join(h.previews.Dir(), name))
}
