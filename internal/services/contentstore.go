package services

import "github.com/senyabanana/briefs-frontend/internal/content"

// ContentStore - источник контента фреймворков; реализуется content.Loader.
type ContentStore interface {
	GetManifest(frameworkSlug, name string) (*content.Manifest, error)
	GetMessage(frameworkSlug, group, key string) (string, error)
	FrameworkConfig(frameworkSlug string) (content.FrameworkConfig, error)
}
