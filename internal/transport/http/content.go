package http

import (
	"net/http"
	"strconv"

	"portfolio/internal/domain"
	"portfolio/internal/dto"
	"portfolio/internal/httpx"
	"portfolio/internal/service"

	"github.com/go-chi/chi/v5"
)

type contentHandler struct {
	history      service.HistoryService
	projects     service.ProjectService
	certificates service.CertificateService
	siteData     service.SiteDataService
	skills       service.SkillsService
	responder
}

// reply writes v with status, or the error when err is set.
func (rs responder) reply(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	if err != nil {
		rs.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, status, v)
}

func (rs responder) deleted(w http.ResponseWriter, r *http.Request, msg string, err error) {
	rs.reply(w, r, http.StatusOK, dto.MessageResponse{Message: msg}, err)
}

// history

const msgHistoryNotFound = "Item history tidak ditemukan."

func (h contentHandler) listHistory(w http.ResponseWriter, r *http.Request) {
	res, err := h.history.List(r.Context())
	h.reply(w, r, http.StatusOK, res, err)
}

func (h contentHandler) createHistory(w http.ResponseWriter, r *http.Request) {
	f, err := readForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	in := dto.HistoryInput{
		Institution: f.str("institution"),
		Detail:      f.str("detail"),
		Years:       f.str("years"),
		Type:        f.str("type"),
	}
	item, err := h.history.Create(r.Context(), in, f.file("logoFile"))
	h.reply(w, r, http.StatusCreated, item, err)
}

func (h contentHandler) updateHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, msgHistoryNotFound)
	if !ok {
		return
	}
	f, err := readForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	patch := dto.HistoryPatch{
		Institution: f.ptr("institution"),
		Detail:      f.ptr("detail"),
		Years:       f.ptr("years"),
		Type:        f.ptr("type"),
	}
	item, err := h.history.Update(r.Context(), id, patch, f.file("logoFile"))
	h.reply(w, r, http.StatusOK, item, err)
}

func (h contentHandler) deleteHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, msgHistoryNotFound)
	if !ok {
		return
	}
	h.deleted(w, r, "Item history berhasil dihapus.", h.history.Delete(r.Context(), id))
}

// projects

const msgProjectNotFound = "Proyek tidak ditemukan."

func (h contentHandler) listProjects(w http.ResponseWriter, r *http.Request) {
	res, err := h.projects.List(r.Context())
	if res == nil {
		res = []domain.Project{}
	}
	h.reply(w, r, http.StatusOK, res, err)
}

func (h contentHandler) createProject(w http.ResponseWriter, r *http.Request) {
	f, err := readForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	in := dto.ProjectInput{
		Title:       f.str("title"),
		Description: f.str("description"),
		DemoURL:     f.str("demoUrl"),
		SourceURL:   f.str("sourceUrl"),
		Tags:        f.str("tags"),
	}
	p, err := h.projects.Create(r.Context(), in, f.file("thumbnail"))
	h.reply(w, r, http.StatusCreated, p, err)
}

func (h contentHandler) updateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, msgProjectNotFound)
	if !ok {
		return
	}
	f, err := readForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	patch := dto.ProjectPatch{
		Title:       f.ptr("title"),
		Description: f.ptr("description"),
		DemoURL:     f.ptr("demoUrl"),
		SourceURL:   f.ptr("sourceUrl"),
		Tags:        f.ptr("tags"),
	}
	p, err := h.projects.Update(r.Context(), id, patch, f.file("thumbnail"))
	h.reply(w, r, http.StatusOK, p, err)
}

func (h contentHandler) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, msgProjectNotFound)
	if !ok {
		return
	}
	h.deleted(w, r, "Proyek berhasil dihapus.", h.projects.Delete(r.Context(), id))
}

// certificates

const msgCertificateNotFound = "Sertifikat tidak ditemukan."

func (h contentHandler) listCertificates(w http.ResponseWriter, r *http.Request) {
	res, err := h.certificates.List(r.Context())
	if res == nil {
		res = []domain.Certificate{}
	}
	h.reply(w, r, http.StatusOK, res, err)
}

func (h contentHandler) createCertificate(w http.ResponseWriter, r *http.Request) {
	f, err := readForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	in := dto.CertificateInput{
		Title:    f.str("title"),
		Issuer:   f.str("issuer"),
		Category: f.str("category"),
	}
	c, err := h.certificates.Create(r.Context(), in, f.file("thumbnail"), f.file("mainFile"))
	h.reply(w, r, http.StatusCreated, c, err)
}

func (h contentHandler) updateCertificate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, msgCertificateNotFound)
	if !ok {
		return
	}
	f, err := readForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	patch := dto.CertificatePatch{
		Title:    f.ptr("title"),
		Issuer:   f.ptr("issuer"),
		Category: f.ptr("category"),
	}
	c, err := h.certificates.Update(r.Context(), id, patch, f.file("thumbnail"), f.file("mainFile"))
	h.reply(w, r, http.StatusOK, c, err)
}

func (h contentHandler) deleteCertificate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, msgCertificateNotFound)
	if !ok {
		return
	}
	h.deleted(w, r, "Sertifikat berhasil dihapus.", h.certificates.Delete(r.Context(), id))
}

// site data

func (h contentHandler) getSiteData(w http.ResponseWriter, r *http.Request) {
	res, err := h.siteData.Get(r.Context())
	h.reply(w, r, http.StatusOK, res, err)
}

func (h contentHandler) updateSiteData(w http.ResponseWriter, r *http.Request) {
	var u dto.SiteDataUpdate
	if err := httpx.DecodeJSON(w, r, &u); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.siteData.Update(r.Context(), u)
	h.reply(w, r, http.StatusOK, res, err)
}

func (h contentHandler) uploadProfileImage(w http.ResponseWriter, r *http.Request) {
	f, err := readForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	img := f.file("profileImage")
	if img == nil {
		h.writeError(w, r, errNoFile)
		return
	}
	res, err := h.siteData.AddProfileImage(r.Context(), *img)
	h.reply(w, r, http.StatusCreated, res, err)
}

func (h contentHandler) updateProfileImage(w http.ResponseWriter, r *http.Request) {
	f, err := readForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	img := f.file("profileImage")
	if img == nil {
		h.writeError(w, r, domain.Invalid("Tidak ada file gambar baru yang di-upload."))
		return
	}
	res, err := h.siteData.ReplaceProfileImage(r.Context(), f.str("oldImageUrl"), *img)
	h.reply(w, r, http.StatusOK, res, err)
}

func (h contentHandler) deleteProfileImage(w http.ResponseWriter, r *http.Request) {
	var req dto.ImageURLRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.siteData.RemoveProfileImage(r.Context(), req.ImageURL)
	h.reply(w, r, http.StatusOK, res, err)
}

// skills

type hardSkillsRequest struct {
	HardSkills []domain.HardSkill `json:"hardSkills"`
}

func (h contentHandler) getSkills(w http.ResponseWriter, r *http.Request) {
	res, err := h.skills.Get(r.Context())
	h.reply(w, r, http.StatusOK, res, err)
}

func (h contentHandler) updateSkills(w http.ResponseWriter, r *http.Request) {
	var u dto.SkillsUpdate
	if err := httpx.DecodeJSON(w, r, &u); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.skills.Update(r.Context(), u)
	h.reply(w, r, http.StatusOK, res, err)
}

func (h contentHandler) addSoftSkill(w http.ResponseWriter, r *http.Request) {
	var req dto.SoftSkillRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.skills.AddSoftSkill(r.Context(), req.Name)
	h.reply(w, r, http.StatusCreated, res, err)
}

func (h contentHandler) removeSoftSkill(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.writeError(w, r, domain.Invalid("Indeks soft skill tidak valid."))
		return
	}
	res, err := h.skills.RemoveSoftSkill(r.Context(), idx)
	h.reply(w, r, http.StatusOK, res, err)
}

func (h contentHandler) replaceHardSkills(w http.ResponseWriter, r *http.Request) {
	var req hardSkillsRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.skills.ReplaceHardSkills(r.Context(), req.HardSkills)
	h.reply(w, r, http.StatusOK, res, err)
}
