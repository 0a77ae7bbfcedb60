package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/repready/backend/internal/telemetry/metrics"
	"github.com/repready/backend/internal/telemetry/tracing"
	"github.com/repready/backend/internal/workouts"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=service.go -destination=service_mocks_test.go -package=backup_test

type driveClient interface {
	EnsureFolder(ctx context.Context, name string) (string, error)
	ListBackups(ctx context.Context, folderID string) ([]StoredBackup, error)
	Upload(ctx context.Context, folderID, name string, content io.Reader) (string, error)
	Delete(ctx context.Context, fileID string) error
}

type workoutsLister interface {
	ListAll(ctx context.Context, params workouts.WorkoutParams) ([]workouts.Workout, error)
}

// StoredBackup is one backup file already sitting in the backups folder.
type StoredBackup struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Export is the content of a single backup file.
type Export struct {
	CreatedAt time.Time          `json:"createdAt"`
	Workouts  []workouts.Workout `json:"workouts"`
}

// Result describes one finished backup run.
type Result struct {
	FileName string `json:"fileName"`
	Workouts int    `json:"workouts"`
	Pruned   int    `json:"pruned"`
}

const (
	backupsFolderName = "repready-backup"
	// newest backups left in the folder after a run
	keepBackups = 10
)

// Service exports the workout history to Google Drive, either on demand
// or periodically.
type Service struct {
	drive    driveClient
	workouts workoutsLister
	metrics  *metrics.Manager
	interval time.Duration

	folderMu sync.Mutex
	folderID string

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	doneChan chan struct{}
}

func NewService(
	drive driveClient,
	workoutsRepo workoutsLister,
	metricsManager *metrics.Manager,
	interval time.Duration,
) *Service {
	return &Service{
		drive:    drive,
		workouts: workoutsRepo,
		metrics:  metricsManager,
		interval: interval,
	}
}

// Run exports all workouts as a JSON file in the Drive backups folder and
// prunes stored backups beyond the newest ones.
func (s *Service) Run(ctx context.Context, baseTime time.Time) (_ Result, err error) {
	ctx, span := tracing.GlobalBackupTracer.Start(ctx, "backup.run")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	start := time.Now()

	folderID, err := s.backupsFolderID(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("ensure backups folder: %w", err)
	}

	existing, err := s.drive.ListBackups(ctx, folderID)
	if err != nil {
		return Result{}, fmt.Errorf("list backups: %w", err)
	}

	history, err := s.workouts.ListAll(ctx, workouts.WorkoutParams{})
	if err != nil {
		return Result{}, fmt.Errorf("list workouts: %w", err)
	}

	exportJson, err := json.Marshal(Export{
		CreatedAt: baseTime,
		Workouts:  history,
	})
	if err != nil {
		return Result{}, fmt.Errorf("marshal export: %w", err)
	}

	fileName := nextBackupFileName(existing, baseTime)
	if _, err := s.drive.Upload(ctx, folderID, fileName, bytes.NewReader(exportJson)); err != nil {
		return Result{}, fmt.Errorf("upload backup: %w", err)
	}

	pruned := s.prune(ctx, existing)

	s.metrics.CounterWorkoutBackups.Inc()
	s.metrics.HistWorkoutBackupDuration.Observe(time.Since(start).Seconds())

	log.Debugf("backup %s done: %d workouts, %d old backups pruned", fileName, len(history), pruned)

	return Result{
		FileName: fileName,
		Workouts: len(history),
		Pruned:   pruned,
	}, nil
}

func (s *Service) backupsFolderID(ctx context.Context) (string, error) {
	s.folderMu.Lock()
	defer s.folderMu.Unlock()
	if s.folderID != "" {
		return s.folderID, nil
	}
	folderID, err := s.drive.EnsureFolder(ctx, backupsFolderName)
	if err != nil {
		return "", err
	}
	s.folderID = folderID
	return folderID, nil
}

// prune deletes the oldest stored backups so that, together with the file
// just uploaded, at most keepBackups remain. A failed delete is logged and
// never fails the backup itself.
func (s *Service) prune(ctx context.Context, existing []StoredBackup) int {
	if len(existing)+1 <= keepBackups {
		return 0
	}

	sort.Slice(existing, func(i, j int) bool {
		return existing[i].CreatedAt.After(existing[j].CreatedAt)
	})

	pruned := 0
	for _, b := range existing[keepBackups-1:] {
		if err := s.drive.Delete(ctx, b.ID); err != nil {
			log.Errorf("prune backup %s: %s", b.Name, err)
			continue
		}
		pruned++
	}
	return pruned
}

func nextBackupFileName(existing []StoredBackup, baseTime time.Time) string {
	taken := make(map[string]struct{}, len(existing))
	for _, b := range existing {
		taken[b.Name] = struct{}{}
	}

	baseName := fmt.Sprintf("workouts-%d-%d-%d", baseTime.Day(), baseTime.Month(), baseTime.Year())
	name := baseName + ".json"
	for counter := 2; ; counter++ {
		if _, ok := taken[name]; !ok {
			return name
		}
		name = fmt.Sprintf("%s_%d.json", baseName, counter)
	}
}

// Start runs a backup every interval. The first one fires after a full
// interval, not at startup.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})
	go s.run(s.stopChan, s.doneChan)
}

// Stop stops the periodic backups and waits for an in-flight one to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stopChan)
	<-s.doneChan
}

func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Service) run(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			res, err := s.Run(context.Background(), time.Now())
			if err != nil {
				log.Errorf("periodic workout backup: %s", err)
				continue
			}
			log.Infof(
				"periodic workout backup done: %s (%d workouts, %d pruned)",
				res.FileName, res.Workouts, res.Pruned,
			)
		}
	}
}
