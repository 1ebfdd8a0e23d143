package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/weiwangfds/easterblog/config"
	apperrors "github.com/weiwangfds/easterblog/internal/errors"
	"github.com/weiwangfds/easterblog/internal/logger"
	"github.com/weiwangfds/easterblog/internal/metrics"
)

// deleteTimeout 单次删除的超时时间，删除不应阻塞请求过久
const deleteTimeout = 30 * time.Second

// Manager 管理所有已注册的存储后端
// 新上传写入主后端，删除按引用的后端分派
type Manager struct {
	primary Backend
	stores  map[Backend]Store
}

// NewManager 创建管理器，primary 为主后端，others 为仅用于删除历史文件的后端
func NewManager(primary Store, others ...Store) *Manager {
	m := &Manager{
		primary: primary.Backend(),
		stores:  map[Backend]Store{primary.Backend(): primary},
	}
	for _, s := range others {
		if _, exists := m.stores[s.Backend()]; !exists {
			m.stores[s.Backend()] = s
		}
	}
	return m
}

// NewFromConfig 根据配置构建管理器
// 本地存储总是注册，保证历史的本地文件可被删除；配置了远程提供商时同时注册远程存储
func NewFromConfig(upload config.UploadConfig, cfg config.StorageConfig) (*Manager, error) {
	local, err := NewLocalStore(upload.RootDir, upload.PublicPrefix)
	if err != nil {
		return nil, err
	}

	var remote Store
	if cfg.Remote.Provider != "" {
		provider, err := NewProvider(cfg.Remote)
		if err != nil {
			if cfg.Backend == string(BackendRemote) {
				return nil, err
			}
			logger.Warnf("远程存储初始化失败，仅使用本地存储: %v", err)
		} else {
			remote = NewRemoteStore(provider, cfg.Remote.Prefix)
		}
	}

	if cfg.Backend == string(BackendRemote) {
		if remote == nil {
			return nil, fmt.Errorf("remote storage backend selected but no provider configured")
		}
		return NewManager(remote, local), nil
	}
	if remote != nil {
		return NewManager(local, remote), nil
	}
	return NewManager(local), nil
}

// Primary 主后端
func (m *Manager) Primary() Backend {
	return m.primary
}

// Store 返回指定后端
func (m *Manager) Store(b Backend) (Store, bool) {
	s, ok := m.stores[b]
	return s, ok
}

// Save 写入主后端
func (m *Manager) Save(ctx context.Context, up Upload) (Object, error) {
	store := m.stores[m.primary]
	obj, err := store.Put(ctx, up)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"backend":  m.primary,
			"kind":     up.Kind,
			"filename": up.Filename,
		}).WithError(err).Error("写入存储失败")
		// 上游已分类的错误（例如超出大小）原样返回
		if appErr, ok := apperrors.GetAppError(err); ok {
			return Object{}, appErr
		}
		return Object{}, apperrors.Storage("Failed to store uploaded file", err)
	}

	metrics.MediaUploads.WithLabelValues(string(up.Kind), string(m.primary)).Inc()
	metrics.MediaUploadBytes.WithLabelValues(string(up.Kind), string(m.primary)).Add(float64(obj.Size))
	logger.WithFields(logrus.Fields{
		"backend": obj.Ref.Backend,
		"locator": obj.Ref.Locator,
		"size":    obj.Size,
	}).Info("媒体文件已写入存储")
	return obj, nil
}

// Remove 尽力删除引用指向的字节
// 失败只记录日志和指标，不返回错误，记录本身是数据是否存在的唯一依据
func (m *Manager) Remove(ctx context.Context, ref Ref) {
	if ref.IsZero() {
		return
	}

	fields := logrus.Fields{"backend": ref.Backend, "locator": ref.Locator}
	store, ok := m.stores[ref.Backend]
	if !ok {
		metrics.StorageDeleteFailures.WithLabelValues(string(ref.Backend)).Inc()
		logger.WithFields(fields).Warn("未注册的存储后端，跳过删除")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deleteTimeout)
	defer cancel()

	if err := store.Delete(ctx, ref.Locator); err != nil {
		metrics.StorageDeleteFailures.WithLabelValues(string(ref.Backend)).Inc()
		logger.WithFields(fields).WithError(err).Error("删除存储文件失败")
		return
	}
	logger.WithFields(fields).Debug("存储文件已删除")
}

// CheckRemote 检查远程存储连通性，未注册远程存储时直接返回
func (m *Manager) CheckRemote(ctx context.Context) error {
	s, ok := m.stores[BackendRemote]
	if !ok {
		return nil
	}
	rs, ok := s.(*RemoteStore)
	if !ok {
		return nil
	}
	return rs.Provider().TestConnection(ctx)
}
