package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/easterblog/config"
	"github.com/weiwangfds/easterblog/internal/database"
	"github.com/weiwangfds/easterblog/internal/service/auth"
	"github.com/weiwangfds/easterblog/internal/storage"
)

const testPasskey = "open-sesame"

type testServer struct {
	handler http.Handler
	root    string
	static  string
}

func newTestServer(t *testing.T, withAuth bool) *testServer {
	root := t.TempDir()
	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>home</h1>"), 0o644))

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test", StaticDir: static},
		Database: config.DatabaseConfig{
			Driver:         "sqlite",
			DSN:            ":memory:",
			LogLevel:       "silent",
			SeedCategories: true,
		},
		Upload: config.UploadConfig{MaxSize: 1 << 20, RootDir: root, PublicPrefix: "/uploads"},
	}
	if withAuth {
		hash, err := auth.HashPasskey(testPasskey)
		require.NoError(t, err)
		cfg.Auth = config.AuthConfig{Enabled: true, PasskeyHash: hash, JWTSecret: "router-secret", TokenTTL: time.Hour}
	}

	db, err := database.Init(cfg.Database)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store, err := storage.NewFromConfig(cfg.Upload, cfg.Storage)
	require.NoError(t, err)

	return &testServer{handler: NewRouter(cfg, db, store).GetEngine(), root: root, static: static}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *testServer) upload(t *testing.T, path, field, filename, contentType string, data []byte, fields map[string]string, token string) *httptest.ResponseRecorder {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if data != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest), w.Body.String())
}

func pngBytes(t *testing.T, width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestHealthAndFallback(t *testing.T) {
	s := newTestServer(t, false)

	t.Run("健康检查", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/health", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)

		w = s.do(t, http.MethodGet, "/api/db/status", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"Database connection OK"}`, w.Body.String())
	})

	t.Run("未知API返回404", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/nope", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"API endpoint not found"}`, w.Body.String())
	})

	t.Run("其他路径由静态目录提供", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/index.html", nil, "")
		// http.FileServer 会把 /index.html 重定向到 /
		assert.Contains(t, []int{http.StatusOK, http.StatusMovedPermanently}, w.Code)

		w = s.do(t, http.MethodGet, "/", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "home")
	})

	t.Run("指标端点", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/metrics", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "easterblog_http_requests_total")
	})

	t.Run("分类", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/categories/photo", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var categories []database.Category
		decode(t, w, &categories)
		assert.Len(t, categories, 5)

		w = s.do(t, http.MethodGet, "/api/categories/audio", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPhotoEndpoints(t *testing.T) {
	s := newTestServer(t, false)

	var photo database.Photo
	t.Run("上传照片", func(t *testing.T) {
		w := s.upload(t, "/api/photos", "photo", "sunrise.png", "image/png", pngBytes(t, 4, 3),
			map[string]string{"category": "Nature"}, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		decode(t, w, &photo)

		assert.Equal(t, "sunrise.png", photo.Title)
		assert.Equal(t, "Nature", photo.Category)
		assert.Equal(t, 4, photo.Width)
		assert.Equal(t, 3, photo.Height)
		assert.True(t, strings.HasPrefix(photo.Filepath, "/uploads/photos/"))

		served := s.do(t, http.MethodGet, photo.Filepath, nil, "")
		assert.Equal(t, http.StatusOK, served.Code)
	})

	t.Run("上传校验", func(t *testing.T) {
		w := s.upload(t, "/api/photos", "photo", "", "", nil, map[string]string{"title": "x"}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"No photo file provided"}`, w.Body.String())

		w = s.upload(t, "/api/photos", "photo", "notes.txt", "text/plain", []byte("hi"), nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		big := make([]byte, (1<<20)+10)
		w = s.upload(t, "/api/photos", "photo", "big.png", "image/png", big, nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"File too large. Maximum size is 1MB."}`, w.Body.String())
	})

	t.Run("部分更新和点赞", func(t *testing.T) {
		path := fmt.Sprintf("/api/photos/%d", photo.ID)
		w := s.do(t, http.MethodPut, path, map[string]string{"title": "Dawn"}, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Photo updated successfully"}`, w.Body.String())

		w = s.do(t, http.MethodGet, path, nil, "")
		var got database.Photo
		decode(t, w, &got)
		assert.Equal(t, "Dawn", got.Title)
		assert.Equal(t, "Nature", got.Category)

		w = s.do(t, http.MethodPost, path+"/like", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"likes":1}`, photo.ID), w.Body.String())
	})

	t.Run("删除后文件也被删除", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/photos?category=all", nil, "")
		var photos []database.Photo
		decode(t, w, &photos)
		require.Len(t, photos, 1)

		w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/photos/%d", photo.ID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Photo deleted successfully"}`, w.Body.String())

		entries, err := os.ReadDir(filepath.Join(s.root, "photos"))
		require.NoError(t, err)
		assert.Empty(t, entries)

		w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/photos/%d", photo.ID), nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Photo not found"}`, w.Body.String())
	})

	t.Run("非法ID", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/photos/abc", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVideoFeaturedEndpoints(t *testing.T) {
	s := newTestServer(t, false)

	ids := make([]uint, 0, 2)
	for i := 0; i < 2; i++ {
		w := s.upload(t, "/api/videos", "video", fmt.Sprintf("clip%d.mp4", i), "video/mp4", []byte("fake mp4 bytes"),
			map[string]string{"title": fmt.Sprintf("Clip %d", i), "duration": "42"}, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var v database.Video
		decode(t, w, &v)
		assert.Equal(t, 42, v.Duration)
		ids = append(ids, v.ID)
	}

	t.Run("没有精选时返回null", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/videos/featured", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))
	})

	t.Run("精选视频唯一", func(t *testing.T) {
		for _, id := range ids {
			w := s.do(t, http.MethodPut, fmt.Sprintf("/api/videos/%d/featured", id), map[string]bool{"featured": true}, "")
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"message":"Video set as featured successfully"}`, w.Body.String())
		}

		w := s.do(t, http.MethodGet, "/api/videos/featured", nil, "")
		var featured database.Video
		decode(t, w, &featured)
		assert.Equal(t, ids[1], featured.ID)

		w = s.do(t, http.MethodGet, "/api/videos", nil, "")
		var videos []database.Video
		decode(t, w, &videos)
		count := 0
		for _, v := range videos {
			if v.Featured {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("取消精选", func(t *testing.T) {
		w := s.do(t, http.MethodPut, fmt.Sprintf("/api/videos/%d/featured", ids[1]), map[string]bool{"featured": false}, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Video removed from featured successfully"}`, w.Body.String())
	})

	t.Run("缺少featured字段或视频不存在", func(t *testing.T) {
		w := s.do(t, http.MethodPut, fmt.Sprintf("/api/videos/%d/featured", ids[0]), map[string]string{}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = s.do(t, http.MethodPut, "/api/videos/9999/featured", map[string]bool{"featured": true}, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Video not found"}`, w.Body.String())
	})

	t.Run("非法时长", func(t *testing.T) {
		w := s.upload(t, "/api/videos", "video", "x.mp4", "video/mp4", []byte("x"),
			map[string]string{"duration": "long"}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("播放计数", func(t *testing.T) {
		w := s.do(t, http.MethodPost, fmt.Sprintf("/api/videos/%d/view", ids[0]), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"views":1}`, ids[0]), w.Body.String())
	})
}

func TestBlogAndContactEndpoints(t *testing.T) {
	s := newTestServer(t, false)

	t.Run("创建文章并生成摘要", func(t *testing.T) {
		content := strings.Repeat("<p>Hello world</p>", 20)
		w := s.do(t, http.MethodPost, "/api/blog-posts", map[string]string{"title": "Hi", "content": content}, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var post database.BlogPost
		decode(t, w, &post)
		assert.Equal(t, database.BlogStatusPublished, post.Status)
		assert.True(t, strings.HasSuffix(post.Excerpt, "..."))
		assert.NotContains(t, post.Excerpt, "<p>")

		w = s.do(t, http.MethodPost, "/api/blog-posts", map[string]string{"title": "Hi"}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Title and content are required"}`, w.Body.String())
	})

	t.Run("草稿不公开", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/blog-posts",
			map[string]string{"title": "Draft", "content": "wip", "status": "draft"}, "")
		require.Equal(t, http.StatusCreated, w.Code)
		var draft database.BlogPost
		decode(t, w, &draft)

		w = s.do(t, http.MethodGet, fmt.Sprintf("/api/blog-posts/%d", draft.ID), nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Blog post not found"}`, w.Body.String())

		w = s.do(t, http.MethodGet, "/api/blog-posts", nil, "")
		var posts []database.BlogPost
		decode(t, w, &posts)
		assert.Len(t, posts, 1)

		w = s.do(t, http.MethodGet, "/api/blog-posts?status=all", nil, "")
		decode(t, w, &posts)
		assert.Len(t, posts, 2)
	})

	t.Run("提交留言", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/contact",
			map[string]string{"name": "Ann", "email": "not-an-email", "message": "hi"}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = s.do(t, http.MethodPost, "/api/contact",
			map[string]string{"name": "Ann", "email": "a@b.com", "message": "hi"}, "")
		require.Equal(t, http.StatusCreated, w.Code)

		var created struct {
			ID      uint   `json:"id"`
			Message string `json:"message"`
		}
		decode(t, w, &created)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Contact message sent successfully", created.Message)

		w = s.do(t, http.MethodPut, fmt.Sprintf("/api/contact/%d", created.ID), map[string]string{"status": "spam"}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = s.do(t, http.MethodPut, fmt.Sprintf("/api/contact/%d", created.ID), map[string]string{"status": "read"}, "")
		assert.Equal(t, http.StatusOK, w.Code)

		w = s.do(t, http.MethodGet, "/api/contact?status=read", nil, "")
		var messages []database.ContactMessage
		decode(t, w, &messages)
		assert.Len(t, messages, 1)
	})
}

func TestAdminAuth(t *testing.T) {
	s := newTestServer(t, true)

	t.Run("写操作需要令牌", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/blog-posts", map[string]string{"title": "t", "content": "c"}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = s.do(t, http.MethodGet, "/api/contact", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("公开接口无需令牌", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/contact",
			map[string]string{"name": "Ann", "email": "a@b.com", "message": "hi"}, "")
		assert.Equal(t, http.StatusCreated, w.Code)

		w = s.do(t, http.MethodGet, "/api/blog-posts", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("口令错误返回401", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/admin/login", map[string]string{"passkey": "nope"}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("登录后可以写入", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/admin/login", map[string]string{"passkey": testPasskey}, "")
		require.Equal(t, http.StatusOK, w.Code)
		var tok auth.Token
		decode(t, w, &tok)
		require.NotEmpty(t, tok.Token)

		w = s.do(t, http.MethodPost, "/api/blog-posts", map[string]string{"title": "t", "content": "c"}, tok.Token)
		assert.Equal(t, http.StatusCreated, w.Code)

		w = s.do(t, http.MethodGet, "/api/contact", nil, tok.Token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
