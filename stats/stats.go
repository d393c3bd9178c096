package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	fileName      = "stats.json"
	corruptSuffix = ".corrupt"
	GroupSize     = 100 // records per compressed group
)

// History holds every recorded run, older runs folded into groups.
type History struct {
	Games []GameRecord
	path  string
	mutex sync.RWMutex
}

// GameRecord is either a single run (CompressionIndex 0) or a group of runs.
type GameRecord struct {
	ID               string    `json:"id,omitempty"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	Score            int       `json:"score"`
	Solved           int       `json:"solved"`
	Cause            string    `json:"cause,omitempty"`
	CompressionIndex int       `json:"compressionIndex"`
	GamesCount       int       `json:"gamesCount"`
	AverageScore     float64   `json:"averageScore"`
	MedianScore      float64   `json:"medianScore"`
	MaxScore         int       `json:"maxScore"`
	MinScore         int       `json:"minScore"`
	AverageDuration  float64   `json:"averageDuration"`
	MaxDuration      float64   `json:"maxDuration"`
	MinDuration      float64   `json:"minDuration"`
}

// Run describes one finished game.
type Run struct {
	ID        string
	Score     int
	Solved    int
	Cause     string
	StartTime time.Time
	EndTime   time.Time
}

// NewHistory loads the history kept in dir. An empty dir keeps it in memory only.
func NewHistory(dir string) (*History, error) {
	h := &History{Games: make([]GameRecord, 0)}
	if dir == "" {
		return h, nil
	}
	h.path = filepath.Join(dir, fileName)
	if err := h.loadFromFile(); err != nil {
		return h, err
	}
	return h, nil
}

// AddGame records a finished run and folds full groups.
func (h *History) AddGame(run Run) GameRecord {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	duration := run.EndTime.Sub(run.StartTime).Seconds()
	record := GameRecord{
		ID:               run.ID,
		StartTime:        run.StartTime,
		EndTime:          run.EndTime,
		Score:            run.Score,
		Solved:           run.Solved,
		Cause:            run.Cause,
		CompressionIndex: 0,
		GamesCount:       1,
		AverageScore:     float64(run.Score),
		MedianScore:      float64(run.Score),
		MaxScore:         run.Score,
		MinScore:         run.Score,
		AverageDuration:  duration,
		MaxDuration:      duration,
		MinDuration:      duration,
	}
	h.Games = append(h.Games, record)
	h.groupGames()
	return record
}

// groupGames folds every GroupSize records of one compression level into a
// single record of the next level.
func (h *History) groupGames() {
	sort.SliceStable(h.Games, func(i, j int) bool {
		if h.Games[i].CompressionIndex != h.Games[j].CompressionIndex {
			return h.Games[i].CompressionIndex < h.Games[j].CompressionIndex
		}
		return h.Games[i].StartTime.Before(h.Games[j].StartTime)
	})

	for level := 0; ; level++ {
		var records, rest []GameRecord
		for _, g := range h.Games {
			if g.CompressionIndex == level {
				records = append(records, g)
			} else {
				rest = append(rest, g)
			}
		}
		if len(records) < GroupSize {
			break
		}

		var folded []GameRecord
		for i := 0; i < len(records); i += GroupSize {
			end := i + GroupSize
			if end > len(records) {
				folded = append(folded, records[i:]...)
				break
			}
			folded = append(folded, mergeGroup(records[i:end], level+1))
		}
		h.Games = append(rest, folded...)
	}
}

func mergeGroup(group []GameRecord, level int) GameRecord {
	merged := GameRecord{
		CompressionIndex: level,
		StartTime:        group[0].StartTime,
		EndTime:          group[0].EndTime,
		MaxScore:         group[0].MaxScore,
		MinScore:         group[0].MinScore,
		MaxDuration:      group[0].MaxDuration,
		MinDuration:      group[0].MinDuration,
	}
	var totalScore, totalDuration float64
	medians := make([]float64, 0, len(group))
	for _, g := range group {
		merged.MaxScore = max(merged.MaxScore, g.MaxScore)
		merged.MinScore = min(merged.MinScore, g.MinScore)
		merged.MaxDuration = max(merged.MaxDuration, g.MaxDuration)
		merged.MinDuration = min(merged.MinDuration, g.MinDuration)
		if g.StartTime.Before(merged.StartTime) {
			merged.StartTime = g.StartTime
		}
		if g.EndTime.After(merged.EndTime) {
			merged.EndTime = g.EndTime
		}
		totalScore += g.AverageScore * float64(g.GamesCount)
		totalDuration += g.AverageDuration * float64(g.GamesCount)
		merged.GamesCount += g.GamesCount
		merged.Solved += g.Solved
		for i := 0; i < g.GamesCount; i++ {
			medians = append(medians, g.MedianScore)
		}
	}
	merged.AverageScore = totalScore / float64(merged.GamesCount)
	merged.AverageDuration = totalDuration / float64(merged.GamesCount)
	merged.MedianScore = median(medians)
	return merged
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	n := len(values)
	if n%2 == 0 {
		return (values[n/2-1] + values[n/2]) / 2
	}
	return values[n/2]
}

// Records returns a copy of the stored records.
func (h *History) Records() []GameRecord {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	out := make([]GameRecord, len(h.Games))
	copy(out, h.Games)
	return out
}

func (h *History) GamesPlayed() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	total := 0
	for _, g := range h.Games {
		total += g.GamesCount
	}
	return total
}

func (h *History) AverageScore() float64 {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	var total float64
	var games int
	for _, g := range h.Games {
		total += g.AverageScore * float64(g.GamesCount)
		games += g.GamesCount
	}
	if games == 0 {
		return 0
	}
	return total / float64(games)
}

// MedianScore weights each record's median by its game count.
func (h *History) MedianScore() float64 {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	var all []float64
	for _, g := range h.Games {
		for i := 0; i < g.GamesCount; i++ {
			all = append(all, g.MedianScore)
		}
	}
	return median(all)
}

func (h *History) MaxScore() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	best := 0
	for _, g := range h.Games {
		best = max(best, g.MaxScore)
	}
	return best
}

// AverageDuration is the mean run length in seconds.
func (h *History) AverageDuration() float64 {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	var total float64
	var games int
	for _, g := range h.Games {
		total += g.AverageDuration * float64(g.GamesCount)
		games += g.GamesCount
	}
	if games == 0 {
		return 0
	}
	return total / float64(games)
}

// Save writes the history as JSON. A memory-only history is a no-op.
func (h *History) Save() error {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return errors.Wrap(err, "creating stats dir")
	}
	data, err := json.Marshal(h.Games)
	if err != nil {
		return errors.Wrap(err, "encoding stats")
	}
	if err := os.WriteFile(h.path, data, 0o644); err != nil {
		return errors.Wrap(err, "writing stats")
	}
	return nil
}

func (h *History) loadFromFile() error {
	data, err := os.ReadFile(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "reading stats")
	}
	if err := json.Unmarshal(data, &h.Games); err != nil {
		h.Games = make([]GameRecord, 0)
		// Keep the unreadable file so the next Save cannot destroy it.
		aside := h.path + corruptSuffix
		if rerr := os.Rename(h.path, aside); rerr != nil {
			return errors.Wrapf(err, "decoding stats (moving aside failed: %v)", rerr)
		}
		return errors.Wrapf(err, "decoding stats, moved to %s", aside)
	}
	return nil
}
