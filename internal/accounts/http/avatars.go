package http

import (
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

// avatarFallbackURL renders a placeholder when the image is not on disk.
const avatarFallbackURL = "https://api.dicebear.com/7.x/adventurer/png"

type AvatarsHandler struct {
	UserService *service.UserService
	Dir         string
}

// HandleList godoc
//
//	@Summary		Avatar allow-list
//	@Tags			Avatars
//	@Produce		json
//	@Success		200	{array}	string
//	@Router			/avatars [get].
func (h *AvatarsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.UserService.AvatarList())
}

// HandleImage godoc
//
//	@Summary		Avatar image
//	@Description	Serves the image from the avatar directory, or redirects to a generated placeholder seeded by the file name.
//	@Tags			Avatars
//	@Produce		png
//	@Param			filename	path	string	true	"Avatar filename, e.g. goku.png"
//	@Success		200
//	@Success		302
//	@Router			/dbz/{filename} [get].
func (h *AvatarsHandler) HandleImage(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")
	if name == "" || name != path.Base(name) || strings.HasPrefix(name, ".") {
		http.NotFound(w, r)
		return
	}

	if h.Dir != "" {
		fsys := os.DirFS(h.Dir)
		if _, err := fs.Stat(fsys, name); err == nil {
			http.ServeFileFS(w, r, fsys, name)
			return
		} else if !errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "avatar unavailable", http.StatusInternalServerError)
			return
		}
	}

	seed := strings.TrimSuffix(name, path.Ext(name))
	q := url.Values{"seed": {seed}, "size": {"128"}}
	http.Redirect(w, r, avatarFallbackURL+"?"+q.Encode(), http.StatusFound)
}
