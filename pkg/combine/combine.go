package combine

import (
	"github.com/cloud-bulldozer/bench-combine/pkg/archive"
	"github.com/cloud-bulldozer/bench-combine/pkg/caliper"
	"github.com/cloud-bulldozer/bench-combine/pkg/config"
	"github.com/cloud-bulldozer/bench-combine/pkg/counts"
	"github.com/cloud-bulldozer/bench-combine/pkg/frame"
	"github.com/cloud-bulldozer/bench-combine/pkg/join"
	log "github.com/cloud-bulldozer/bench-combine/pkg/logging"
	"github.com/sirupsen/logrus"
)

// Options describes one combine invocation.
type Options struct {
	CountsPath string
	// ReportStub is the report path without the "_<mode>.json" suffix.
	ReportStub string
	OutputPath string
	Config     config.Config
}

// Result is what a run appended.
type Result struct {
	Combined *frame.Frame
	Appended int
}

// ReportPath returns the timing report of mode for stub.
func ReportPath(stub, mode string) string {
	return stub + "_" + mode + ".json"
}

// ReportPaths returns the timing report of every mode, in mode order.
func ReportPaths(stub string, modes []string) []string {
	paths := make([]string, 0, len(modes))
	for _, m := range modes {
		paths = append(paths, ReportPath(stub, m))
	}
	return paths
}

// Timing reads the report of every configured mode and stacks the samples.
func Timing(stub string, cfg config.Config) (*frame.Frame, error) {
	var frames []*frame.Frame
	for _, mode := range cfg.Modes {
		path := ReportPath(stub, mode)
		f, err := caliper.ReadTiming(path, mode, cfg)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{"report": path, "mode": mode}).Infof("Read %d timing samples", f.Len())
		frames = append(frames, f)
	}
	return frame.Concat(frames...), nil
}

// Combine joins the counts with the timing reports without writing anything.
func Combine(o Options) (*frame.Frame, error) {
	cf, err := counts.Load(o.CountsPath, o.Config.Key)
	if err != nil {
		return nil, err
	}
	log.Infof("Loaded %d count rows from %s", cf.Len(), o.CountsPath)
	tf, err := Timing(o.ReportStub, o.Config)
	if err != nil {
		return nil, err
	}
	return join.Inner(cf, tf, o.Config.Key)
}

// Run combines the sources and appends the result to the output file. The
// append is the last step, so a failure before it leaves the output as it was.
func Run(o Options) (*Result, error) {
	combined, err := Combine(o)
	if err != nil {
		return nil, err
	}
	n, err := archive.Append(o.OutputPath, combined, archive.OptionsFromConfig(o.Config))
	if err != nil {
		return nil, err
	}
	log.Infof("Appended %d combined rows to %s", n, o.OutputPath)
	return &Result{Combined: combined, Appended: n}, nil
}
