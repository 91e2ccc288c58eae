package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/davicafu/detailstream/internal/detail/domain"
)

// line es cada registro del fichero JSONL.
type line struct {
	PartitionKey string          `json:"partition_key"`
	Data         json.RawMessage `json:"data"`
}

// AppendLog es un adaptador outbound que añade las entradas a un fichero
// <dir>/<stream>.jsonl. El número de secuencia es el offset de la línea.
type AppendLog struct {
	dir string
	mu  sync.Mutex // Mutex para evitar race conditions al escribir el fichero.
}

func NewAppendLog(dir string) *AppendLog {
	return &AppendLog{dir: dir}
}

func (l *AppendLog) PutRecords(ctx context.Context, stream string, entries []domain.Entry) (domain.DeliveryResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return domain.DeliveryResult{}, err
	}

	f, err := os.OpenFile(l.path(stream), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return domain.DeliveryResult{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return domain.DeliveryResult{}, err
	}
	offset := info.Size()

	w := bufio.NewWriter(f)
	res := domain.DeliveryResult{Records: make([]domain.EntryResult, 0, len(entries))}
	for _, e := range entries {
		// Una entrada que no es JSON se guarda como string JSON.
		data := json.RawMessage(e.Data)
		if !json.Valid(e.Data) {
			quoted, _ := json.Marshal(string(e.Data))
			data = quoted
		}

		encoded, err := json.Marshal(line{PartitionKey: e.PartitionKey, Data: data})
		if err != nil {
			return domain.DeliveryResult{}, err
		}
		encoded = append(encoded, '\n')
		if _, err := w.Write(encoded); err != nil {
			return domain.DeliveryResult{}, fmt.Errorf("write %s: %w", l.path(stream), err)
		}

		res.Records = append(res.Records, domain.EntryResult{SequenceNumber: strconv.FormatInt(offset, 10), ShardID: stream})
		offset += int64(len(encoded))
	}

	if err := w.Flush(); err != nil {
		return domain.DeliveryResult{}, fmt.Errorf("flush %s: %w", l.path(stream), err)
	}
	return res, nil
}

// ReadAll devuelve las entradas escritas en un stream. Si el fichero no existe
// devuelve una lista vacía sin error.
func (l *AppendLog) ReadAll(stream string) ([]domain.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path(stream))
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Entry{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var out []domain.Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for scanner.Scan() {
		var ln line
		if err := json.Unmarshal(scanner.Bytes(), &ln); err != nil {
			return nil, err
		}
		out = append(out, domain.Entry{Data: []byte(ln.Data), PartitionKey: ln.PartitionKey})
	}
	return out, scanner.Err()
}

func (l *AppendLog) path(stream string) string {
	return filepath.Join(l.dir, filepath.Base(stream)+".jsonl")
}

// Verificación estática
var _ domain.AppendLog = (*AppendLog)(nil)
