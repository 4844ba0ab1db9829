package database

import (
	"encoding/json"
	"examprep_backend/internal/config"
	"examprep_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.DBName,
		dbCfg.Charset,
		dbCfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认不迁移，-migrate / -migrate-only 可强制
	if cfg.Server.Mode == "release" && !cfg.ForceMigrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.InviteCode{},
		&model.Course{},
		&model.Topic{},
		&model.LearnCard{},
		&model.QuestionTemplate{},
		&model.PracticeAttempt{},
		&model.UserLearnProgress{},
		&model.UserPracticeProgress{},
		&model.CheatSheetEntry{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedDefaults(db)

	return db, nil
}

// seedDefaults 首次启动时写入默认邀请码与示例课程内容
func seedDefaults(db *gorm.DB) {
	var codeCount int64
	db.Model(&model.InviteCode{}).Count(&codeCount)
	if codeCount == 0 {
		defaultCodes := []string{"CALC2-ALPHA", "CALC2-BETA", "CALC2-GAMMA", "CALC2-DELTA"}
		for _, code := range defaultCodes {
			db.Create(&model.InviteCode{Code: code})
		}
	}

	var topicCount int64
	db.Model(&model.Topic{}).Count(&topicCount)
	if topicCount > 0 {
		return
	}

	log.Println("Seeding starter course content")

	course := &model.Course{
		Name:        "Calculus II Part 1",
		Description: "Vectors, integration fundamentals, techniques, and approximation methods",
		Icon:        "📐",
		OrderIndex:  0,
	}
	db.Create(course)

	vectors := &model.Topic{
		CourseID:    &course.ID,
		Name:        "Vectors",
		Description: "Building vectors, dot products, cross products, projections, and vector planes",
		Icon:        "→",
		OrderIndex:  0,
	}
	db.Create(vectors)

	db.Create(&model.LearnCard{
		TopicID:          vectors.ID,
		Title:            "Skill 1: Build a Vector From 2 Points",
		Content:          "Given points $P$ and $Q$, the vector $\\vec{PQ}$ is found by subtracting the coordinates of $P$ from $Q$:\n\n$$\\vec{PQ} = Q - P$$",
		Formula:          "$$\\vec{PQ} = Q - P$$",
		QuickCheck:       "Find PQ if P = (2, 1) and Q = (5, 4)",
		QuickCheckAnswer: "(3, 3)",
		OrderIndex:       0,
	})
	db.Create(&model.LearnCard{
		TopicID:          vectors.ID,
		Title:            "Skill 2: Find The Angle Between 2 Vectors Using The Dot Product",
		Content:          "The dot product relates two vectors to the angle between them:\n\n$$\\vec{A} \\cdot \\vec{B} = |A||B|\\cos\\theta$$",
		Formula:          "$$\\vec{A} \\cdot \\vec{B} = |A||B|\\cos\\theta$$",
		QuickCheck:       "Find the dot product of (1, 2, 3) and (4, 5, 6)",
		QuickCheckAnswer: "32",
		OrderIndex:       1,
	})

	db.Create(&model.QuestionTemplate{
		TopicID:          vectors.ID,
		Kind:             model.KindDotProduct,
		TemplateText:     "Find the dot product of $({a1}, {a2})$ and $({b1}, {b2})$.",
		SolutionTemplate: "$\\vec{a} \\cdot \\vec{b} = {a1} \\cdot {b1} + {a2} \\cdot {b2} = {p1} + {p2} = {answer}$",
		AnswerType:       model.AnswerNumeric,
		Parameters:       mustParams(map[string]model.ParamSpec{"a1": {Min: 1, Max: 8}, "a2": {Min: 1, Max: 8}, "b1": {Min: 1, Max: 8}, "b2": {Min: 1, Max: 8}}),
	})
	db.Create(&model.QuestionTemplate{
		TopicID:          vectors.ID,
		Kind:             model.KindMagnitude,
		TemplateText:     "Find the magnitude of vector $({a}, {b})$.",
		SolutionTemplate: "$|\\vec{v}| = \\sqrt{{a}^2 + {b}^2} = \\sqrt{{a2} + {b2}} = {answer}$",
		AnswerType:       model.AnswerNumeric,
		Parameters:       mustParams(map[string]model.ParamSpec{"a": {Min: 1, Max: 12}, "b": {Min: 1, Max: 12}}),
	})

	integration := &model.Topic{
		CourseID:    &course.ID,
		Name:        "Integration Fundamentals",
		Description: "Riemann sums, Fundamental Theorem of Calculus, and graphical connections",
		Icon:        "∫",
		OrderIndex:  1,
	}
	db.Create(integration)

	db.Create(&model.LearnCard{
		TopicID:          integration.ID,
		Title:            "Skill 1: Using The Riemann Sum Formula",
		Content:          "A Riemann sum approximates $\\int_a^b f(x) \\, dx$ by dividing $[a,b]$ into $n$ subintervals of width $\\Delta x = \\frac{b-a}{n}$.",
		Formula:          "$$\\int_a^b f(x) \\, dx \\approx \\sum_{i=1}^{n} f(x_i^*) \\Delta x$$",
		QuickCheck:       "What is the midpoint of the interval [1, 3]?",
		QuickCheckAnswer: "2",
		OrderIndex:       0,
	})

	db.Create(&model.QuestionTemplate{
		TopicID:          integration.ID,
		Kind:             model.KindIntegral,
		TemplateText:     "Evaluate the definite integral $\\int_0^{b} {a}x \\, dx$.",
		SolutionTemplate: "$\\int_0^{b} {a}x \\, dx = \\frac{{a}x^2}{2} \\Big|_0^{b} = {answer}$",
		AnswerType:       model.AnswerNumeric,
		Parameters:       mustParams(map[string]model.ParamSpec{"a": {Min: 1, Max: 5}, "b": {Min: 2, Max: 6}}),
	})

	locked := &model.Course{
		Name:        "Calculus II Part 2",
		Description: "Polar coordinates, complex numbers, integral applications, arc length, and improper integrals",
		Icon:        "📏",
		OrderIndex:  1,
		Locked:      true,
	}
	db.Create(locked)
	db.Create(&model.Topic{
		CourseID:    &locked.ID,
		Name:        "Polar Coordinates",
		Description: "Polar curves, area, and conversion between coordinate systems",
		Icon:        "🎯",
		OrderIndex:  0,
	})

	log.Println("Starter content seeded")
}

func mustParams(specs map[string]model.ParamSpec) json.RawMessage {
	raw, err := json.Marshal(specs)
	if err != nil {
		panic(err)
	}
	return raw
}
