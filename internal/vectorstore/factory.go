package vectorstore

import (
	"fmt"

	"github.com/fyrsmithlabs/consultd/internal/config"
	"go.uber.org/zap"
)

// NewStore creates a Store based on the configuration.
//
// The factory examines cfg.VectorStore.Provider:
//   - "chromem" (default): embedded ChromemStore, no external deps
//   - "qdrant": QdrantStore, requires a running Qdrant server
//
// Example:
//
//	store, err := vectorstore.NewStore(cfg, embedder, logger)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
func NewStore(cfg *config.Config, embedder Embedder, logger *zap.Logger) (Store, error) {
	switch cfg.VectorStore.Provider {
	case "chromem", "":
		return NewChromemStore(ChromemConfig{
			Path:              cfg.VectorStore.Chromem.Path,
			Compress:          cfg.VectorStore.Chromem.Compress,
			DefaultCollection: cfg.VectorStore.Chromem.Collection,
			VectorSize:        cfg.VectorStore.Chromem.VectorSize,
		}, embedder, logger)

	case "qdrant":
		return NewQdrantStore(QdrantConfig{
			Host:           cfg.VectorStore.Qdrant.Host,
			Port:           cfg.VectorStore.Qdrant.Port,
			APIKey:         cfg.VectorStore.Qdrant.APIKey.Value(),
			UseTLS:         cfg.VectorStore.Qdrant.UseTLS,
			CollectionName: cfg.VectorStore.Qdrant.Collection,
			VectorSize:     uint64(cfg.VectorStore.Qdrant.VectorSize),
		}, embedder)

	default:
		return nil, fmt.Errorf("unsupported vectorstore provider: %s (supported: chromem, qdrant)", cfg.VectorStore.Provider)
	}
}
