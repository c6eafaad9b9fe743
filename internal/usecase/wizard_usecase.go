package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/fadilmartias/neuraview/internal/model"
	"golang.org/x/sync/semaphore"
)

type Step int

const (
	StepWelcome Step = iota
	StepCoreSetup
	StepFocusArea
	StepLength
	StepConfirm
)

func (s Step) String() string {
	switch s {
	case StepWelcome:
		return "welcome"
	case StepCoreSetup:
		return "core-setup"
	case StepFocusArea:
		return "focus-area"
	case StepLength:
		return "length"
	case StepConfirm:
		return "confirm"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

type Stage string

const (
	StageIdle       Stage = "idle"
	StageUploading  Stage = "uploading"
	StageExtracting Stage = "extracting"
	StageCreating   Stage = "creating"
)

const (
	LevelSuccess = "success"
	LevelError   = "error"
)

const (
	MsgResumeUploaded   = "Resume uploaded successfully"
	MsgResumeAnalyzed   = "Resume analyzed successfully"
	MsgResumeFailed     = "Error uploading or parsing resume"
	MsgInterviewCreated = "Interview Created Successfully"
	MsgCreateFailed     = "Something went wrong"
)

type Notification struct {
	Level   string
	Message string
}

// Wizard drives one interview configuration: a step cursor over a single
// draft, plus the upload/extract pipeline and the final create call. Only the
// operation that owns the current stage mutates the draft.
type Wizard struct {
	id         string
	owner      string
	uploader   Uploader
	extractor  Extractor
	interviews *InterviewUsecase
	timeout    time.Duration

	// at most one pipeline and one create in flight
	ingest *semaphore.Weighted
	create *semaphore.Weighted

	mu            sync.Mutex
	step          Step
	stage         Stage
	draft         InterviewDraft
	notifications []Notification
	redirect      string
	finished      bool
	lastActive    time.Time
}

func NewWizard(id, owner string, uploader Uploader, extractor Extractor, interviews *InterviewUsecase, timeout time.Duration) *Wizard {
	return &Wizard{
		id:         id,
		owner:      owner,
		uploader:   uploader,
		extractor:  extractor,
		interviews: interviews,
		timeout:    timeout,
		ingest:     semaphore.NewWeighted(1),
		create:     semaphore.NewWeighted(1),
		step:       StepWelcome,
		stage:      StageIdle,
		draft:      NewInterviewDraft(),
		lastActive: time.Now(),
	}
}

func (w *Wizard) ID() string {
	return w.id
}

func (w *Wizard) Owner() string {
	return w.owner
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Stage() Stage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stage
}

func (w *Wizard) Draft() InterviewDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

func (w *Wizard) Redirect() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.redirect
}

// Continue moves the cursor one step forward.
func (w *Wizard) Continue() error {
	return w.moveStep(1)
}

// Back moves the cursor one step back.
func (w *Wizard) Back() error {
	return w.moveStep(-1)
}

func (w *Wizard) moveStep(delta int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageIdle {
		return ErrWizardBusy
	}
	next := w.step + Step(delta)
	if next < StepWelcome {
		next = StepWelcome
	}
	if next > StepConfirm {
		next = StepConfirm
	}
	w.step = next
	w.lastActive = time.Now()
	return nil
}

// Update applies user edits. Nothing is applied when any edit is invalid.
func (w *Wizard) Update(req dto.WizardUpdateRequest) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageIdle {
		return ErrWizardBusy
	}

	draft := w.draft
	if req.CandidateName != nil {
		draft.CandidateName = *req.CandidateName
	}
	if req.Skills != nil {
		draft.Skills = *req.Skills
	}
	if req.Topic != nil {
		draft.Topic = *req.Topic
	}
	if req.Mode != nil {
		if err := draft.SetMode(*req.Mode); err != nil {
			return err
		}
	}
	if req.Difficulty != nil {
		if err := draft.SetDifficulty(*req.Difficulty); err != nil {
			return err
		}
	}
	if req.QuestionCount != nil {
		if err := draft.SetQuestionCount(*req.QuestionCount); err != nil {
			return err
		}
	}
	w.draft = draft
	w.lastActive = time.Now()
	return nil
}

// SelectResume runs upload then extraction for one selected file. A second
// selection while one is in flight is refused with ErrWizardBusy. Every
// outcome leaves a notification and returns the wizard to idle.
func (w *Wizard) SelectResume(ctx context.Context, file ResumeFile) error {
	if !w.ingest.TryAcquire(1) {
		return ErrWizardBusy
	}
	defer w.ingest.Release(1)

	if err := w.enter(StageUploading); err != nil {
		return err
	}
	defer w.leave()

	if err := w.ingestResume(ctx, file); err != nil {
		log.Printf("wizard %s: resume pipeline failed: %v", w.id, err)
		w.notify(LevelError, MsgResumeFailed)
		return err
	}
	return nil
}

func (w *Wizard) ingestResume(ctx context.Context, file ResumeFile) error {
	uploadCtx, cancel := w.withTimeout(ctx)
	url, err := w.uploader.Upload(uploadCtx, file)
	cancel()
	if err != nil {
		return fmt.Errorf("upload resume: %w", err)
	}
	if url == "" {
		return ErrUploadFailed
	}

	w.mu.Lock()
	w.draft.ResumeURL = &url
	w.stage = StageExtracting
	w.mu.Unlock()
	w.notify(LevelSuccess, MsgResumeUploaded)

	extractCtx, cancel := w.withTimeout(ctx)
	defer cancel()
	raw, err := w.extractor.Extract(extractCtx, []dto.ChatMessage{
		dto.NewPartsMessage(dto.RoleUser, dto.ImagePart(url)),
	})
	if err != nil {
		return fmt.Errorf("extract resume: %w", err)
	}

	result := ParseExtraction(raw)
	if !result.OK() {
		return result.Err
	}

	w.mu.Lock()
	w.draft.Prefill(result.Fields)
	// the welcome step only exists to ask for the upload
	if w.step < StepCoreSetup {
		w.step = StepCoreSetup
	}
	w.mu.Unlock()
	w.notify(LevelSuccess, MsgResumeAnalyzed)
	return nil
}

// Complete submits the draft from the final step. Validation failures and CMS
// errors are reported as notifications; the cursor never moves.
func (w *Wizard) Complete(ctx context.Context, auth AuthState) (*model.Interview, error) {
	if !w.create.TryAcquire(1) {
		return nil, ErrWizardBusy
	}
	defer w.create.Release(1)

	w.mu.Lock()
	switch {
	case w.finished:
		w.mu.Unlock()
		return nil, ErrWizardFinished
	case w.stage != StageIdle:
		w.mu.Unlock()
		return nil, ErrWizardBusy
	case w.step != StepConfirm:
		w.mu.Unlock()
		return nil, ErrStepOutOfOrder
	}
	w.stage = StageCreating
	draft := w.draft
	w.mu.Unlock()
	defer w.leave()

	record, err := w.interviews.Create(ctx, draft, auth)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			w.notify(LevelError, verr.Message)
		} else {
			log.Printf("wizard %s: create interview failed: %v", w.id, err)
			w.notify(LevelError, MsgCreateFailed)
		}
		return nil, err
	}

	w.mu.Lock()
	w.finished = true
	w.redirect = InterviewPath(record.DocumentID)
	w.draft = NewInterviewDraft()
	w.mu.Unlock()
	w.notify(LevelSuccess, MsgInterviewCreated)
	return record, nil
}

// Notifications returns pending notifications and clears them.
func (w *Wizard) Notifications() []Notification {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.notifications
	w.notifications = nil
	return out
}

// Snapshot renders the wizard for the client, draining notifications.
func (w *Wizard) Snapshot() dto.WizardSnapshotDTO {
	w.mu.Lock()
	defer w.mu.Unlock()
	snap := dto.WizardSnapshotDTO{
		ID:            w.id,
		Step:          int(w.step),
		StepName:      w.step.String(),
		Stage:         string(w.stage),
		Draft:         w.draft.DTO(),
		Notifications: make([]dto.NotificationDTO, 0, len(w.notifications)),
		Redirect:      w.redirect,
	}
	for _, n := range w.notifications {
		snap.Notifications = append(snap.Notifications, dto.NotificationDTO{Level: n.Level, Message: n.Message})
	}
	w.notifications = nil
	return snap
}

func (w *Wizard) idleSince() (time.Time, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastActive, w.stage == StageIdle
}

func (w *Wizard) enter(stage Stage) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.finished {
		return ErrWizardFinished
	}
	if w.stage != StageIdle {
		return ErrWizardBusy
	}
	w.stage = stage
	w.lastActive = time.Now()
	return nil
}

func (w *Wizard) leave() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stage = StageIdle
	w.lastActive = time.Now()
}

func (w *Wizard) notify(level, message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.notifications = append(w.notifications, Notification{Level: level, Message: message})
}

func (w *Wizard) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if w.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, w.timeout)
}
