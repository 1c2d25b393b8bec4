package impl

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"portfolio/internal/domain"
	"portfolio/internal/dto"
	"portfolio/internal/media"

	"github.com/google/uuid"
)

func TestHistoryCreateListAndDelete(t *testing.T) {
	st := setupStore(t)
	fm := &fakeMedia{}
	svc := NewHistoryServiceImpl(st, fm)
	ctx := context.Background()

	if _, err := svc.Create(ctx, dto.HistoryInput{Institution: "Univ", Years: "2019", Type: "hobby"}, nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad type: got %v", err)
	}
	if _, err := svc.Create(ctx, dto.HistoryInput{Institution: "Univ"}, nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing fields: got %v", err)
	}

	edu, err := svc.Create(ctx, dto.HistoryInput{Institution: "Univ", Years: "2019 - 2023", Type: domain.HistoryEducation}, imageFile())
	if err != nil {
		t.Fatalf("create education: %v", err)
	}
	if edu.LogoID == "" || edu.LogoURL == "" {
		t.Fatal("expected logo to be stored")
	}
	if _, err := svc.Create(ctx, dto.HistoryInput{Institution: "Corp", Years: "2023", Type: domain.HistoryExperience}, nil); err != nil {
		t.Fatalf("create experience: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Education) != 1 || len(list.Experience) != 1 {
		t.Fatalf("unexpected split %d/%d", len(list.Education), len(list.Experience))
	}

	if err := svc.Delete(ctx, edu.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !fm.wasDiscarded(edu.LogoID) {
		t.Fatal("logo should be discarded on delete")
	}
	if err := svc.Delete(ctx, edu.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: got %v", err)
	}
}

func TestHistoryUpdateReplacesLogo(t *testing.T) {
	st := setupStore(t)
	fm := &fakeMedia{}
	svc := NewHistoryServiceImpl(st, fm)
	ctx := context.Background()

	item, err := svc.Create(ctx, dto.HistoryInput{Institution: "Univ", Detail: "S1", Years: "2019", Type: domain.HistoryEducation}, imageFile())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldLogo := item.LogoID

	updated, err := svc.Update(ctx, item.ID, dto.HistoryPatch{Years: strp("2019 - 2023")}, imageFile())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Years != "2019 - 2023" || updated.Detail != "S1" {
		t.Fatalf("unexpected fields %+v", updated)
	}
	if updated.LogoID == oldLogo || !fm.wasDiscarded(oldLogo) {
		t.Fatal("old logo should be replaced and discarded")
	}

	if _, err := svc.Update(ctx, item.ID, dto.HistoryPatch{Type: strp("other")}, nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad type: got %v", err)
	}
	if _, err := svc.Update(ctx, uuid.New(), dto.HistoryPatch{}, nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown id: got %v", err)
	}
}

func TestHistoryUploadFailurePropagates(t *testing.T) {
	st := setupStore(t)
	fm := &fakeMedia{putErr: domain.Upstream("Gagal meng-upload file ke layanan media.", errors.New("boom"))}
	svc := NewHistoryServiceImpl(st, fm)

	_, err := svc.Create(context.Background(), dto.HistoryInput{Institution: "Univ", Years: "2019", Type: domain.HistoryEducation}, imageFile())
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	list, _ := svc.List(context.Background())
	if len(list.Education) != 0 {
		t.Fatal("nothing should be stored when the upload fails")
	}
}

func TestProjectThumbnailRoundTrip(t *testing.T) {
	st := setupStore(t)
	fm := &fakeMedia{}
	svc := NewProjectServiceImpl(st, fm)
	ctx := context.Background()

	if _, err := svc.Create(ctx, dto.ProjectInput{Title: "Site"}, nil); !errors.Is(err, errProjectNeedsPicture) {
		t.Fatalf("missing thumbnail: got %v", err)
	}
	if len(fm.puts) != 0 {
		t.Fatal("no upload should happen without a thumbnail")
	}

	p, err := svc.Create(ctx, dto.ProjectInput{Title: "Site", Tags: "go, chi"}, imageFile())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.DemoURL != "#" || p.SourceURL != "#" {
		t.Fatalf("expected placeholder links, got %q %q", p.DemoURL, p.SourceURL)
	}
	handle := p.ImageID

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !fm.wasDiscarded(handle) {
		t.Fatalf("delete should discard thumbnail %q, discarded %v", handle, fm.discarded)
	}
	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, other := range list {
		if other.ImageID == handle {
			t.Fatal("no project may still reference the deleted thumbnail")
		}
	}
}

func TestProjectUpdate(t *testing.T) {
	st := setupStore(t)
	fm := &fakeMedia{}
	svc := NewProjectServiceImpl(st, fm)
	ctx := context.Background()

	p, err := svc.Create(ctx, dto.ProjectInput{Title: "Site", DemoURL: "https://demo.example"}, imageFile())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, p.ID, dto.ProjectPatch{DemoURL: strp(""), Description: strp("new")}, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.DemoURL != "#" || updated.Description != "new" || updated.Title != "Site" {
		t.Fatalf("unexpected project %+v", updated)
	}
	if len(fm.discarded) != 0 {
		t.Fatal("thumbnail must stay without a new file")
	}

	if _, err := svc.Update(ctx, p.ID, dto.ProjectPatch{Title: strp("  ")}, nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("blank title: got %v", err)
	}
}

func TestCertificateCreateWithPDF(t *testing.T) {
	st := setupStore(t)
	fm := &fakeMedia{}
	svc := NewCertificateServiceImpl(st, fm)
	ctx := context.Background()

	in := dto.CertificateInput{Title: "Go", Issuer: "Dicoding", Category: "Backend"}
	pdf := &media.File{Filename: "c.pdf", ContentType: media.ContentTypePDF, Data: []byte("%PDF-1.4")}

	if _, err := svc.Create(ctx, in, imageFile(), nil); !errors.Is(err, errCertificateFiles) {
		t.Fatalf("missing main file: got %v", err)
	}

	c, err := svc.Create(ctx, in, imageFile(), pdf)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Type != domain.CertificatePDF {
		t.Fatalf("type = %q", c.Type)
	}
	if c.ImageID == "" || c.FileID == "" || c.ImageID == c.FileID {
		t.Fatalf("expected two distinct handles, got %q %q", c.ImageID, c.FileID)
	}

	updated, err := svc.Update(ctx, c.ID, dto.CertificatePatch{}, nil, imageFile())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Type != domain.CertificateImage || !fm.wasDiscarded(c.FileID) || fm.wasDiscarded(c.ImageID) {
		t.Fatalf("only the main file should be replaced: %+v discarded=%v", updated, fm.discarded)
	}

	if err := svc.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !fm.wasDiscarded(c.ImageID) || !fm.wasDiscarded(updated.FileID) {
		t.Fatal("both handles should be discarded on delete")
	}
}

func TestSiteDataUpdateAndProfileImages(t *testing.T) {
	st := setupStore(t)
	fm := &fakeMedia{}
	svc := NewSiteDataServiceImpl(st, fm)
	ctx := context.Background()

	if _, err := svc.Update(ctx, dto.SiteDataUpdate{BrandName: strp(" ")}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("blank brand name: got %v", err)
	}
	data, err := svc.Update(ctx, dto.SiteDataUpdate{
		JobTitle:     strp("Backend Engineer"),
		ContactLinks: &domain.ContactLinks{GitHub: "https://github.com/me"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if data.JobTitle != "Backend Engineer" || data.ContactLinks.Data().GitHub != "https://github.com/me" {
		t.Fatalf("unexpected site data %+v", data)
	}

	for i := 0; i < domain.MaxProfileImages; i++ {
		if data, err = svc.AddProfileImage(ctx, *imageFile()); err != nil {
			t.Fatalf("add image %d: %v", i, err)
		}
	}
	if _, err := svc.AddProfileImage(ctx, *imageFile()); !errors.Is(err, errTooManyProfileImages) {
		t.Fatalf("fourth image: got %v", err)
	}

	first := data.ProfileImages[0]
	data, err = svc.ReplaceProfileImage(ctx, first.URL, *imageFile())
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if data.ProfileImageIndex(first.URL) != -1 || !fm.wasDiscarded(first.ID) {
		t.Fatal("replaced image should be gone and discarded")
	}
	if _, err := svc.ReplaceProfileImage(ctx, "https://unknown", *imageFile()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown old url: got %v", err)
	}

	second := data.ProfileImages[1]
	data, err = svc.RemoveProfileImage(ctx, second.URL)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(data.ProfileImages) != 2 || !fm.wasDiscarded(second.ID) {
		t.Fatalf("expected two images left and a discard, got %d", len(data.ProfileImages))
	}

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), second.ID) || !strings.Contains(string(raw), `"profileImages":["https://`) {
		t.Fatalf("profile images should render as urls only: %s", raw)
	}
}

func TestSkillsMutations(t *testing.T) {
	svc := NewSkillsServiceImpl(setupStore(t))
	ctx := context.Background()

	data, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(data.SoftSkills) != len(domain.DefaultSoftSkills()) {
		t.Fatalf("expected default soft skills, got %v", data.SoftSkills)
	}

	data, err = svc.AddSoftSkill(ctx, " Kepemimpinan ")
	if err != nil {
		t.Fatalf("add soft: %v", err)
	}
	if got := data.SoftSkills[len(data.SoftSkills)-1]; got != "Kepemimpinan" {
		t.Fatalf("last soft skill = %q", got)
	}
	if _, err := svc.AddSoftSkill(ctx, ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("blank soft skill: got %v", err)
	}

	data, err = svc.RemoveSoftSkill(ctx, 0)
	if err != nil {
		t.Fatalf("remove soft: %v", err)
	}
	if data.SoftSkills[0] == "Komunikasi" {
		t.Fatal("first soft skill should be removed")
	}
	if _, err := svc.RemoveSoftSkill(ctx, len(data.SoftSkills)); !errors.Is(err, errSoftSkillIndex) {
		t.Fatalf("out of range: got %v", err)
	}

	data, err = svc.ReplaceHardSkills(ctx, []domain.HardSkill{
		{ID: 7, Icon: "go", Name: "Go", Level: "Mahir"},
		{Icon: "react", Name: "React"},
	})
	if err != nil {
		t.Fatalf("replace hard: %v", err)
	}
	if len(data.HardSkills) != 2 || data.HardSkills[1].Level != domain.DefaultSkillLevel || data.HardSkills[1].ID != 8 {
		t.Fatalf("unexpected hard skills %+v", data.HardSkills)
	}
	if _, err := svc.ReplaceHardSkills(ctx, []domain.HardSkill{{Name: "NoIcon"}}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing icon: got %v", err)
	}

	soft := []string{"Satu", " ", "Dua"}
	data, err = svc.Update(ctx, dto.SkillsUpdate{SoftSkills: &soft})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(data.SoftSkills) != 2 || len(data.HardSkills) != 2 {
		t.Fatalf("update should only touch soft skills: %+v", data)
	}

	again, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if len(again.SoftSkills) != 2 || again.SoftSkills[1] != "Dua" {
		t.Fatalf("changes not persisted: %v", again.SoftSkills)
	}
}
