package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
	"github.com/diillson/aws-finops-report-go/internal/domain/repository"
	"github.com/diillson/aws-finops-report-go/internal/shared/types"
)

// DefaultCacheTTL é a janela durante a qual passes de análise repetidos
// reutilizam o snapshot já carregado em vez de reler o arquivo.
const DefaultCacheTTL = 5 * time.Minute

// Caminhos candidatos quando nenhum arquivo é especificado: primeiro o
// relativo ao diretório de trabalho, depois o caminho de produção.
var defaultDataFiles = []string{
	"data/aws_finops_data.json",
	"/opt/finops/data/aws_finops_data.json",
}

// SnapshotRepositoryImpl implementa o SnapshotRepository com cache por TTL.
type SnapshotRepositoryImpl struct {
	path string
	ttl  time.Duration

	mu       sync.Mutex
	cached   *entity.Snapshot
	loadedAt time.Time
	now      func() time.Time
}

// NewSnapshotRepository cria um novo SnapshotRepository. path pode ser vazio;
// nesse caso os caminhos padrão são tentados em ordem.
func NewSnapshotRepository(path string) repository.SnapshotRepository {
	return &SnapshotRepositoryImpl{
		path: path,
		ttl:  DefaultCacheTTL,
		now:  time.Now,
	}
}

// SetPath troca o arquivo de dados em uso e invalida o cache quando o
// caminho muda.
func (r *SnapshotRepositoryImpl) SetPath(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if path == r.path {
		return
	}
	r.path = path
	r.cached = nil
}

// Load returns the snapshot document, reusing a previously loaded one while
// the cache window is open. A missing file maps to ErrSnapshotNotFound and
// an unparseable file to ErrSnapshotMalformed; in both cases no partial
// snapshot is returned.
func (r *SnapshotRepositoryImpl) Load(ctx context.Context) (*entity.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil && r.now().Sub(r.loadedAt) < r.ttl {
		return r.cached, nil
	}

	path, err := r.resolvePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrSnapshotNotFound, path)
	}

	var snap entity.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSnapshotMalformed, path, err)
	}

	r.cached = &snap
	r.loadedAt = r.now()
	return r.cached, nil
}

// resolvePath devolve o primeiro caminho existente entre o configurado e os
// padrões.
func (r *SnapshotRepositoryImpl) resolvePath() (string, error) {
	candidates := defaultDataFiles
	if r.path != "" {
		candidates = []string{r.path}
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: tried %v", types.ErrSnapshotNotFound, candidates)
}
