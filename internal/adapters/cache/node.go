package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quack/internal/adapters/config"
	"go.trai.ch/quack/internal/adapters/logger"
	"go.trai.ch/quack/internal/adapters/objectstore"
	"go.trai.ch/quack/internal/core/ports"
)

const NodeID graft.ID = "adapter.cache_selector"

func init() {
	graft.Register(graft.Node[ports.StoreSelector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.StoreSelector, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			opts := Options{
				LocalRoot: settings.CacheDir,
				Prefix:    settings.OSS.Prefix,
			}
			// The object store is only dialed when a remote is configured, so
			// local-only setups never need credentials.
			if settings.Remote() {
				objects, err := objectstore.NewS3(objectstore.S3Config{
					Endpoint:        settings.OSS.Endpoint,
					Bucket:          settings.OSS.Bucket,
					AccessKeyID:     settings.OSS.AccessKeyID,
					AccessKeySecret: settings.OSS.AccessKeySecret,
					Secure:          settings.OSS.Secure,
				})
				if err != nil {
					return nil, err
				}
				opts.Objects = objects
			}
			return NewSelector(opts, log), nil
		},
	})
}
