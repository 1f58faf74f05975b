package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/cloud-bulldozer/bench-combine/pkg/frame"
	"github.com/cloud-bulldozer/bench-combine/pkg/logging"
	"github.com/cloud-bulldozer/go-commons/indexers"
)

// Doc is one combined row as an indexable JSON document.
type Doc map[string]interface{}

// Connect returns a client connected to the desired cluster.
func Connect(url, index string, skip bool) (*indexers.Indexer, error) {
	indexerConfig := indexers.IndexerConfig{
		Type:               "opensearch",
		Servers:            []string{url},
		Index:              index,
		InsecureSkipVerify: skip,
	}
	return newIndexer(indexerConfig)
}

// ConnectLocal returns an indexer writing the documents under dir.
func ConnectLocal(dir string) (*indexers.Indexer, error) {
	indexerConfig := indexers.IndexerConfig{
		Type:             "local",
		MetricsDirectory: dir,
	}
	return newIndexer(indexerConfig)
}

func newIndexer(indexerConfig indexers.IndexerConfig) (*indexers.Indexer, error) {
	logging.Infof("📁 Creating indexer: %s", indexerConfig.Type)
	indexer, err := indexers.NewIndexer(indexerConfig)
	if err != nil {
		logging.Errorf("%v indexer: %v", indexerConfig.Type, err.Error())
		return nil, fmt.Errorf("failure while creating %v indexer", indexerConfig.Type)
	}
	return indexer, nil
}

// Index sends docs through indexer under metricName.
func Index(indexer *indexers.Indexer, docs []interface{}, metricName string) error {
	logging.Infof("Indexing [%d] documents as %s", len(docs), metricName)
	resp, err := (*indexer).Index(docs, indexers.IndexingOpts{MetricName: metricName})
	if err != nil {
		return err
	}
	logging.Info(resp)
	return nil
}

// BuildDocs returns the documents that need to be indexed or an error.
// Columns named in text keep their cell verbatim; other cells that parse as
// numbers are stored as numbers.
func BuildDocs(f *frame.Frame, uuid string, text []string) ([]interface{}, error) {
	verbatim := map[string]bool{}
	for _, c := range text {
		verbatim[c] = true
	}
	now := time.Now().UTC()

	var docs []interface{}
	if f.Len() < 1 {
		return nil, fmt.Errorf("no result documents")
	}
	for _, row := range f.Rows {
		d := Doc{
			"uuid":      uuid,
			"timestamp": now,
		}
		for i, c := range f.Columns {
			if verbatim[c] {
				d[c] = row[i]
				continue
			}
			if v, err := strconv.ParseFloat(row[i], 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
				d[c] = v
				continue
			}
			d[c] = row[i]
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// WriteJSONResult writes the combined rows as JSON to w
func WriteJSONResult(f *frame.Frame, uuid string, text []string, w io.Writer) error {
	docs, err := BuildDocs(f, uuid, text)
	if err != nil {
		return err
	}
	p, err := json.MarshalIndent(docs, " ", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(p))
	return err
}
