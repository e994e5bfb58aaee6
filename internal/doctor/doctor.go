package doctor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/treykane/paccu/internal/audioserver"
	"github.com/treykane/paccu/internal/catalog"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Issue struct {
	Severity       Severity `json:"severity"`
	Check          string   `json:"check"`
	Target         string   `json:"target"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
}

type Report struct {
	Targets int     `json:"targets"`
	Issues  []Issue `json:"issues"`
}

// Run connects to the audio server and checks that outputs can be listed
// and that the active one can be detected.
func Run(ctx context.Context, cfg audioserver.Config, dial audioserver.Dialer) (Report, error) {
	s, err := audioserver.Connect(ctx, cfg, dial)
	if err != nil {
		return Report{Issues: []Issue{{
			Severity:       SeverityHigh,
			Check:          "audio-server",
			Target:         serverTarget(cfg.Server),
			Message:        err.Error(),
			Recommendation: "make sure PulseAudio or pipewire-pulse is running for this user, or set `server` in config.yaml",
		}}}, nil
	}
	defer s.Close()

	sinks, err := s.Sinks(ctx)
	if err != nil {
		return Report{}, err
	}
	defaultSink, ok, err := s.DefaultSinkName(ctx)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Targets: len(catalog.Flatten(sinks, defaultSink)),
		Issues:  Analyze(sinks, defaultSink, ok),
	}, nil
}

// Analyze inspects an enumeration result without talking to the server.
// Issues are ordered by severity, then check and target.
func Analyze(sinks []audioserver.SinkInfo, defaultSink string, hasDefault bool) []Issue {
	issues := analyze(sinks, defaultSink, hasDefault)
	sortIssues(issues)
	return issues
}

func analyze(sinks []audioserver.SinkInfo, defaultSink string, hasDefault bool) []Issue {
	var issues []Issue
	if len(sinks) == 0 {
		issues = append(issues, Issue{
			Severity:       SeverityHigh,
			Check:          "sinks",
			Target:         "server",
			Message:        "the server reports no sinks",
			Recommendation: "check that an output device is connected and its driver module is loaded",
		})
	}

	for _, sink := range sinks {
		name := sink.Name
		if strings.TrimSpace(name) == "" {
			name = sink.Description
		}
		if len(sink.Ports) == 0 {
			issues = append(issues, Issue{
				Severity:       SeverityLow,
				Check:          "sink-without-ports",
				Target:         name,
				Message:        "sink has no ports and will not be listed",
				Recommendation: "switch the card profile if you expected outputs on this device",
			})
		}
		if strings.TrimSpace(sink.Name) == "" || strings.TrimSpace(sink.Description) == "" {
			issues = append(issues, Issue{
				Severity:       SeverityLow,
				Check:          "missing-metadata",
				Target:         name,
				Message:        "sink name or description is not reported and will show as N/A",
				Recommendation: "none; switching may fail for sinks without a name",
			})
		}
	}

	if !hasDefault {
		issues = append(issues, Issue{
			Severity:       SeverityMedium,
			Check:          "default-sink",
			Target:         "server",
			Message:        "can't get default sink name; no output will be marked active",
			Recommendation: "pick an output once to set a default sink",
		})
		return issues
	}

	var found *audioserver.SinkInfo
	for i := range sinks {
		if sinks[i].Name == defaultSink {
			found = &sinks[i]
			break
		}
	}
	switch {
	case found == nil:
		issues = append(issues, Issue{
			Severity:       SeverityMedium,
			Check:          "default-sink",
			Target:         defaultSink,
			Message:        "default sink is not among the listed sinks",
			Recommendation: "the default device may have been removed; pick a new output",
		})
	case !hasPort(*found, found.ActivePortName):
		issues = append(issues, Issue{
			Severity:       SeverityMedium,
			Check:          "active-port",
			Target:         defaultSink,
			Message:        fmt.Sprintf("active port %q does not match any port of the default sink", found.ActivePortName),
			Recommendation: "the picker will start on the first row; pick the output explicitly",
		})
	}
	return issues
}

func hasPort(sink audioserver.SinkInfo, port string) bool {
	if port == "" {
		return false
	}
	for _, p := range sink.Ports {
		if p.Name == port {
			return true
		}
	}
	return false
}

func serverTarget(server string) string {
	if strings.TrimSpace(server) == "" {
		return "default"
	}
	return server
}

func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		ri := severityRank(issues[i].Severity)
		rj := severityRank(issues[j].Severity)
		if ri != rj {
			return ri > rj
		}
		if issues[i].Check != issues[j].Check {
			return issues[i].Check < issues[j].Check
		}
		return issues[i].Target < issues[j].Target
	})
}

func severityRank(s Severity) int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}
