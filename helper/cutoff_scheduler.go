package helper

import (
	"campus_queue/database"
	"campus_queue/model"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const hardCutoffLookbackDays = 7

var (
	cutoffPoller      *cron.Cron
	hardCutoffRunner  gocron.Scheduler
	hardCutoffAtHour  uint = 17 // 17:00 giờ Manila
	hardCutoffAtMins  uint = 0
	staleCutoffMaxAge      = 7 * 24 * time.Hour
)

// StartCutoffScheduler khởi động 2 job nền. Gọi lại lần nữa là no-op —
// mỗi process chỉ một scheduler.
func StartCutoffScheduler() {
	if cutoffPoller != nil {
		return
	}

	cutoffPoller = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// Poll cutoff quá hạn mỗi 1 phút
	_, err := cutoffPoller.AddFunc("* * * * *", func() {
		ProcessScheduledCutoffs(database.DB, time.Now())
	})
	if err != nil {
		log.Printf("Lỗi khởi tạo cutoff poller: %v", err)
		return
	}
	cutoffPoller.Start()
	log.Println("[CRON] Cutoff poller đã khởi động (mỗi 1 phút)")

	s, err := gocron.NewScheduler(
		gocron.WithLocation(ManilaTZ),
	)
	if err != nil {
		log.Fatal(err)
	}
	hardCutoffRunner = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(hardCutoffAtHour, hardCutoffAtMins, 0),
			),
		),
		gocron.NewTask(func() {
			ProcessDailyHardCutoff(database.DB, hardCutoffLookbackDays, time.Now())
		}),
	)
	if err != nil {
		log.Fatal(err)
	}
	s.Start()
	log.Printf("[CRON] Daily hard cutoff đã khởi động (%02d:%02d Manila)", hardCutoffAtHour, hardCutoffAtMins)
}

func StopCutoffScheduler() {
	if cutoffPoller != nil {
		cutoffPoller.Stop()
		cutoffPoller = nil
	}
	if hardCutoffRunner != nil {
		hardCutoffRunner.Shutdown()
		hardCutoffRunner = nil
	}
	log.Println("[CRON] Cutoff scheduler đã dừng")
}

// ProcessScheduledCutoffs (Job A): xử lý mọi CutoffSchedule quá hạn chưa bật
// cờ. Mỗi schedule một đơn vị — lỗi một cái không chặn cái sau.
func ProcessScheduledCutoffs(db *gorm.DB, now time.Time) {
	localNow := now.In(ManilaTZ)
	log.Printf("[JOB] Bắt đầu xử lý cutoff @ %s", localNow.Format(time.RFC3339))

	defer func() {
		log.Printf("[JOB] Hoàn tất xử lý cutoff @ %s", time.Now().In(ManilaTZ).Format(time.RFC3339))
	}()

	var overdue []model.CutoffSchedule
	if err := db.Where("is_cutoff = ? AND cutoff_time <= ?", false, now.UTC()).Find(&overdue).Error; err != nil {
		log.Printf("[JOB] Lỗi query cutoff quá hạn: %v", err)
		return
	}

	if len(overdue) == 0 {
		log.Println("[JOB] Không có cutoff quá hạn — idle")
		return
	}
	log.Printf("[JOB] Tìm thấy %d cutoff quá hạn", len(overdue))

	for _, sched := range overdue {
		if err := processOneCutoff(db, sched, now); err != nil {
			log.Printf("[JOB] Lỗi xử lý cutoff ID %d: %v", sched.ID, err)
		}
	}
}

func processOneCutoff(db *gorm.DB, sched model.CutoffSchedule, now time.Time) error {
	cutoffLocal := sched.CutoffTime.In(ManilaTZ)

	// Lịch quá cũ (>7 ngày) coi như bỏ rơi — log rồi bỏ qua, không đụng gì
	if now.Sub(sched.CutoffTime) > staleCutoffMaxAge {
		log.Printf("[JOB] Bỏ qua cutoff ID %d — cũ hơn 7 ngày", sched.ID)
		return nil
	}

	campusName := sched.Campus
	if campusName == "" {
		campusName = "All"
	}
	log.Printf("[JOB] Xử lý cutoff ID %d @ %s (Campus: %s)", sched.ID, cutoffLocal.Format("2006-01-02 15:04:05"), campusName)

	startOfDay, endOfDay := DayWindow(sched.CutoffTime)

	var claimed bool
	var currentRows, legacyRows int64

	// CAS claim + cả hai bulk update nằm trong MỘT transaction: flip cờ mà
	// update dở dang là hai bảng lệch nhau vĩnh viễn, Job A không bao giờ
	// quay lại schedule đã claim
	err := db.Transaction(func(tx *gorm.DB) error {
		// chỉ runner nào flip được cờ mới xử lý tiếp — chống double-process
		// khi hai lần chạy chồng nhau
		claim := tx.Model(&model.CutoffSchedule{}).
			Where("id = ? AND is_cutoff = ?", sched.ID, false).
			Update("is_cutoff", true)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return nil
		}
		claimed = true

		currentQ := tx.Model(&model.QueueEntry{}).
			Where("status IN ?", []string{model.QueueOnQueue, model.QueueOnHold}).
			Where("created_at >= ? AND created_at < ?", startOfDay, endOfDay)

		legacyQ := tx.Model(&model.LegacyQueueEntry{}).
			Where("status IN ?", []string{model.QueueOnQueue, model.QueueOnHold}).
			Where("created_at >= ? AND created_at < ?", startOfDay, endOfDay)

		if sched.Campus != "" {
			currentQ = currentQ.Where("campus = ?", sched.Campus)
			// Bảng legacy không có cột campus — check qua cả 3 slot requester
			legacyQ = legacyQ.Where(
				"student_id IN (?) OR guest_id IN (?) OR new_enrollee_id IN (?)",
				tx.Model(&model.Student{}).Select("id").Where("campus = ?", sched.Campus),
				tx.Model(&model.Guest{}).Select("id").Where("campus = ?", sched.Campus),
				tx.Model(&model.NewEnrollee{}).Select("id").Where("campus = ?", sched.Campus),
			)
		}

		currentRes := currentQ.Update("status", model.QueueCutOff)
		if currentRes.Error != nil {
			return currentRes.Error
		}
		legacyRes := legacyQ.Update("status", model.QueueCutOff)
		if legacyRes.Error != nil {
			return legacyRes.Error
		}

		currentRows = currentRes.RowsAffected
		legacyRows = legacyRes.RowsAffected
		return nil
	})
	if err != nil {
		return err
	}

	if !claimed {
		log.Printf("[JOB] Cutoff ID %d đã được claim bởi run khác — bỏ qua", sched.ID)
		return nil
	}

	log.Printf("[JOB] Cutoff ID %d — đã CUT_OFF: current %d, legacy %d", sched.ID, currentRows, legacyRows)
	return nil
}

// ProcessDailyHardCutoff (Job B): lưới an toàn độc lập với Job A. Quét từ hôm
// nay lùi về daysBack ngày, force CUT_OFF mọi vé còn mở — không lọc campus,
// không phụ thuộc CutoffSchedule. Idempotent vì predicate status đã lọc vé
// CUT_OFF rồi.
func ProcessDailyHardCutoff(db *gorm.DB, daysBack int, now time.Time) {
	localNow := now.In(ManilaTZ)
	log.Printf("[AUTO] Daily hard cutoff bắt đầu @ %s", localNow.Format(time.RFC3339))

	defer func() {
		log.Printf("[AUTO] Daily hard cutoff hoàn tất @ %s", time.Now().In(ManilaTZ).Format(time.RFC3339))
	}()

	for days := 0; days <= daysBack; days++ {
		dayStart, dayEnd := DayWindow(localNow.AddDate(0, 0, -days))

		if err := hardCutoffOneDay(db, dayStart, dayEnd); err != nil {
			log.Printf("[AUTO] Lỗi hard cutoff ngày %s: %v", dayStart.Format("2006-01-02"), err)
		}
	}
}

func hardCutoffOneDay(db *gorm.DB, dayStart, dayEnd time.Time) error {
	var currentRows, legacyRows int64

	// Hai bảng cùng commit hoặc cùng rollback
	err := db.Transaction(func(tx *gorm.DB) error {
		currentRes := tx.Model(&model.QueueEntry{}).
			Where("status IN ?", []string{model.QueueOnQueue, model.QueueOnHold}).
			Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
			Update("status", model.QueueCutOff)
		if currentRes.Error != nil {
			return currentRes.Error
		}

		legacyRes := tx.Model(&model.LegacyQueueEntry{}).
			Where("status IN ?", []string{model.QueueOnQueue, model.QueueOnHold}).
			Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
			Update("status", model.QueueCutOff)
		if legacyRes.Error != nil {
			return legacyRes.Error
		}

		currentRows = currentRes.RowsAffected
		legacyRows = legacyRes.RowsAffected
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[AUTO] Hard cutoff ngày %s — current %d, legacy %d", dayStart.Format("2006-01-02"), currentRows, legacyRows)
	return nil
}
