package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anhdng/songngu/internal/domain"
)

const validSeed = `---
hero:
  greeting: {vi: "Xin chào", en: "Hello"}
  name: "Anh Đặng"
  title: {vi: "Kỹ sư phần mềm", en: "Software Engineer"}
  subtitle: {vi: "Xây dựng sản phẩm", en: "Building products"}
  ctaText: {vi: "Liên hệ", en: "Get in touch"}
  ctaLink: "#contact"
about:
  description: {vi: "Giới thiệu bản thân", en: "A bit about me"}
  experience: {vi: "Năm năm kinh nghiệm", en: "Five years of experience"}
  profileImage: "/images/profile.jpg"
services:
  - title: {vi: "Phát triển web", en: "Web development"}
    description: {vi: "Ứng dụng web hiện đại", en: "Modern web apps"}
    color: "#3B82F6"
    bgColor: "#EFF6FF"
    order: 0
  - title: {vi: "Tư vấn", en: "Consulting"}
    description: {vi: "Tư vấn kiến trúc", en: "Architecture consulting"}
    color: "#F59E0B"
    bgColor: "#FFFBEB"
    order: 1
projects:
  - title: {vi: "Cửa hàng", en: "Storefront"}
    description: {vi: "Trang thương mại", en: "Commerce site"}
    technologies: [Go, Redis]
    github: "https://github.com/anhdng/storefront"
    order: 0
blog:
  - title: {vi: "Bài đầu tiên", en: "First post"}
    excerpt: {vi: "Tóm tắt", en: "Summary"}
    content: {vi: "Nội dung bài viết", en: "Post content"}
    status: published
    tags: [go]
    publishDate: "2026-01-15"
contact:
  email: "anh@example.com"
  phone: "+84 123 456 789"
  github: "https://github.com/anhdng"
  linkedin: "https://linkedin.com/in/anhdng"
settings:
  defaultLanguage: vi
  defaultTheme: light
  colorPalette: ["#1E293B", "#3B82F6", "#F59E0B", "#FFFFFF"]
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	loader := NewLoader(writeSeed(t, validSeed))

	f, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.Hero == nil || f.Hero.Name != "Anh Đặng" {
		t.Errorf("hero = %+v", f.Hero)
	}
	if len(f.Services) != 2 {
		t.Errorf("services = %d, want 2", len(f.Services))
	}
}

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := loader.Load(); err == nil {
		t.Fatal("Load() of missing file succeeded")
	}
}

func TestLoaderBadYAML(t *testing.T) {
	loader := NewLoader(writeSeed(t, "hero: [unbalanced"))
	if _, err := loader.Load(); err == nil {
		t.Fatal("Load() of bad yaml succeeded")
	}
}

func TestMapSnapshot(t *testing.T) {
	loader := NewLoader(writeSeed(t, validSeed))
	f, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	snap, err := NewMapper().MapSnapshot(f)
	if err != nil {
		t.Fatalf("MapSnapshot() error = %v", err)
	}

	if snap.Hero == nil || snap.Hero.Greeting.Vi != "Xin chào" {
		t.Errorf("hero = %+v", snap.Hero)
	}
	if len(snap.Services) != 2 || snap.Services[1].Order != 1 {
		t.Errorf("services = %+v", snap.Services)
	}
	for _, s := range snap.Services {
		if s.ID == "" {
			t.Error("service seeded without generated id")
		}
	}
	if len(snap.BlogPosts) != 1 {
		t.Fatalf("blog = %+v", snap.BlogPosts)
	}
	post := snap.BlogPosts[0]
	if post.Status != domain.BlogPublished {
		t.Errorf("status = %q", post.Status)
	}
	if got := post.PublishDate.Format("2006-01-02"); got != "2026-01-15" {
		t.Errorf("publishDate = %q", got)
	}
	if snap.Settings == nil || len(snap.Settings.ColorPalette) != 4 {
		t.Errorf("settings = %+v", snap.Settings)
	}
}

func TestMapSnapshotKeepsExplicitIDs(t *testing.T) {
	f := File{
		Services: []Service{{
			ID:          "svc-fixed",
			Title:       Text{Vi: "A", En: "A"},
			Description: Text{Vi: "B", En: "B"},
			Color:       "#112233",
			BgColor:     "#445566",
			Order:       0,
		}},
	}

	snap, err := NewMapper().MapSnapshot(f)
	if err != nil {
		t.Fatalf("MapSnapshot() error = %v", err)
	}
	if snap.Services[0].ID != "svc-fixed" {
		t.Errorf("id = %q, want the explicit id kept", snap.Services[0].ID)
	}
}

func TestMapSnapshotRejectsInvalidContent(t *testing.T) {
	f := File{
		Hero: &Hero{
			Greeting: Text{Vi: "Xin chào"}, // missing english
			Name:     "Anh",
			Title:    Text{Vi: "Dev", En: "Developer"},
			Subtitle: Text{Vi: "a", En: "b"},
			CTAText:  Text{Vi: "Liên hệ", En: "Contact"},
			CTALink:  "not a link",
		},
	}

	_, err := NewMapper().MapSnapshot(f)
	if err == nil {
		t.Fatal("MapSnapshot() accepted invalid hero")
	}
	for _, want := range []string{"hero.greeting_en", "hero.ctaLink"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestMapSnapshotRejectsBadBlogStatus(t *testing.T) {
	f := File{
		Blog: []BlogPost{{
			Title:   Text{Vi: "a", En: "b"},
			Excerpt: Text{Vi: "a", En: "b"},
			Content: Text{Vi: "a", En: "b"},
			Status:  "archived",
			Tags:    []string{"go"},
		}},
	}

	_, err := NewMapper().MapSnapshot(f)
	if err == nil || !strings.Contains(err.Error(), "unknown status") {
		t.Fatalf("err = %v, want unknown-status rejection", err)
	}
}

func TestMapSnapshotEmptyFile(t *testing.T) {
	snap, err := NewMapper().MapSnapshot(File{})
	if err != nil {
		t.Fatalf("MapSnapshot() error = %v", err)
	}
	if snap.Hero != nil || len(snap.Services) != 0 {
		t.Errorf("empty file produced content: %+v", snap)
	}
}
