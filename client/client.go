// Package client 是博客API的Go客户端
// 包括管理后台使用的列表缓存、批量删除和前台的渐进式分页
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/weiwangfds/easterblog/internal/database"
)

// APIError 服务端返回的非2xx响应
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client API客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 使用自定义的 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken 使用已有的管理员令牌
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New 创建客户端，baseURL 形如 http://localhost:3000
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListOptions 列表查询参数，零值表示使用服务端默认值
type ListOptions struct {
	Category string
	Status   string
	Limit    int
	Offset   int
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Category != "" {
		q.Set("category", o.Category)
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	return q
}

// FileUpload 上传的文件和表单字段
type FileUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
	Fields      map[string]string
}

// Login 登录并在后续请求中携带令牌
func (c *Client) Login(ctx context.Context, passkey string) error {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/login", nil, map[string]string{"passkey": passkey}, &out); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

// ListPhotos 获取照片列表
func (c *Client) ListPhotos(ctx context.Context, opts ListOptions) ([]database.Photo, error) {
	var photos []database.Photo
	err := c.doJSON(ctx, http.MethodGet, "/api/photos", opts.query(), nil, &photos)
	return photos, err
}

// UploadPhoto 上传照片
func (c *Client) UploadPhoto(ctx context.Context, up FileUpload) (*database.Photo, error) {
	var photo database.Photo
	if err := c.upload(ctx, "/api/photos", "photo", up, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

// UpdatePhoto 部分更新照片，只发送 fields 中的字段
func (c *Client) UpdatePhoto(ctx context.Context, id uint, fields map[string]interface{}) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/photos/%d", id), nil, fields, nil)
}

// DeletePhoto 删除照片
func (c *Client) DeletePhoto(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/photos/%d", id), nil, nil, nil)
}

// ListVideos 获取视频列表
func (c *Client) ListVideos(ctx context.Context, opts ListOptions) ([]database.Video, error) {
	var videos []database.Video
	err := c.doJSON(ctx, http.MethodGet, "/api/videos", opts.query(), nil, &videos)
	return videos, err
}

// UploadVideo 上传视频
func (c *Client) UploadVideo(ctx context.Context, up FileUpload) (*database.Video, error) {
	var video database.Video
	if err := c.upload(ctx, "/api/videos", "video", up, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// UpdateVideo 部分更新视频
func (c *Client) UpdateVideo(ctx context.Context, id uint, fields map[string]interface{}) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/videos/%d", id), nil, fields, nil)
}

// DeleteVideo 删除视频
func (c *Client) DeleteVideo(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/videos/%d", id), nil, nil, nil)
}

// SetFeatured 设置或取消精选
func (c *Client) SetFeatured(ctx context.Context, id uint, featured bool) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/videos/%d/featured", id), nil,
		map[string]bool{"featured": featured}, nil)
}

// GetFeatured 获取精选视频，没有时返回 nil
func (c *Client) GetFeatured(ctx context.Context) (*database.Video, error) {
	var video *database.Video
	if err := c.doJSON(ctx, http.MethodGet, "/api/videos/featured", nil, nil, &video); err != nil {
		return nil, err
	}
	return video, nil
}

// ListBlogPosts 获取文章列表
func (c *Client) ListBlogPosts(ctx context.Context, opts ListOptions) ([]database.BlogPost, error) {
	var posts []database.BlogPost
	err := c.doJSON(ctx, http.MethodGet, "/api/blog-posts", opts.query(), nil, &posts)
	return posts, err
}

// CreateBlogPost 创建文章
func (c *Client) CreateBlogPost(ctx context.Context, fields map[string]string) (*database.BlogPost, error) {
	var post database.BlogPost
	if err := c.doJSON(ctx, http.MethodPost, "/api/blog-posts", nil, fields, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdateBlogPost 部分更新文章
func (c *Client) UpdateBlogPost(ctx context.Context, id uint, fields map[string]interface{}) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/blog-posts/%d", id), nil, fields, nil)
}

// DeleteBlogPost 删除文章
func (c *Client) DeleteBlogPost(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/blog-posts/%d", id), nil, nil, nil)
}

// SendContact 提交留言，返回留言ID
func (c *Client) SendContact(ctx context.Context, name, email, message string) (uint, error) {
	var out struct {
		ID uint `json:"id"`
	}
	body := map[string]string{"name": name, "email": email, "message": message}
	if err := c.doJSON(ctx, http.MethodPost, "/api/contact", nil, body, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// ListContacts 获取留言列表
func (c *Client) ListContacts(ctx context.Context, opts ListOptions) ([]database.ContactMessage, error) {
	var messages []database.ContactMessage
	err := c.doJSON(ctx, http.MethodGet, "/api/contact", opts.query(), nil, &messages)
	return messages, err
}

// UpdateContactStatus 更新留言状态
func (c *Client) UpdateContactStatus(ctx context.Context, id uint, status string) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/contact/%d", id), nil,
		map[string]string{"status": status}, nil)
}

// DeleteContact 删除留言
func (c *Client) DeleteContact(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/contact/%d", id), nil, nil, nil)
}

// ListCategories 按类型获取分类
func (c *Client) ListCategories(ctx context.Context, categoryType string) ([]database.Category, error) {
	var categories []database.Category
	err := c.doJSON(ctx, http.MethodGet, "/api/categories/"+url.PathEscape(categoryType), nil, nil, &categories)
	return categories, err
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) upload(ctx context.Context, path, field string, up FileUpload, out interface{}) error {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range up.Fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, up.Filename))
	h.Set("Content-Type", up.ContentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, up.Body); err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
			apiErr.Message = body.Error
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
