package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
	"github.com/mallkiller3-ctrl/daily-health/internal/tracker"
)

const DefaultCoachRecentDays = 7

type CoachClient interface {
	CoachReply(ctx context.Context, prompt model.CoachPrompt) (string, error)
}

// Coach keeps the conversation transcript. The remote side is stateless so
// every request carries the instruction and all prior turns.
type Coach struct {
	client     CoachClient
	recentDays int
	guard      Guard
	turns      []model.ChatMessage
}

func NewCoach(client CoachClient, recentDays int) *Coach {
	if recentDays <= 0 {
		recentDays = DefaultCoachRecentDays
	}
	return &Coach{client: client, recentDays: recentDays}
}

func Greeting(name string) string {
	return fmt.Sprintf("안녕하세요 %s님! 당신의 개인 건강 코치입니다. 오늘 식단이나 운동, 혹은 마운자로 관리에 대해 궁금한 점이 있으신가요?", name)
}

func (c *Coach) Transcript() []model.ChatMessage {
	return append([]model.ChatMessage(nil), c.turns...)
}

// Ask sends message with the current profile and recent history. On failure
// the transcript is left as it was and ErrCoachUnavailable is returned.
func (c *Coach) Ask(ctx context.Context, profile model.Profile, history []model.LogEntry, now time.Time, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	var reply string
	err := c.guard.Run(func() error {
		prompt := model.CoachPrompt{
			SystemInstruction: BuildCoachInstruction(profile, history, now, c.recentDays),
			Turns:             c.Transcript(),
			Message:           message,
		}
		text, err := c.client.CoachReply(ctx, prompt)
		if err != nil {
			log.WithError(err).Warn("coach reply failed")
			return ErrCoachUnavailable
		}
		reply = text
		c.turns = append(c.turns,
			model.ChatMessage{Role: model.RoleUser, Text: message},
			model.ChatMessage{Role: model.RoleModel, Text: text},
		)
		return nil
	})
	if err != nil {
		return "", err
	}
	return reply, nil
}

// BuildCoachInstruction describes the user and their last recentDays
// entries in chronological order.
func BuildCoachInstruction(profile model.Profile, history []model.LogEntry, now time.Time, recentDays int) string {
	bmi := tracker.BMI(profile.CurrentWeight, profile.Height)
	lines := make([]string, 0, recentDays)
	for _, e := range tracker.Last(history, recentDays) {
		lines = append(lines, fmt.Sprintf("- %s: %skg, %dkcal, %d건 운동",
			e.Date,
			strconv.FormatFloat(e.Weight, 'f', -1, 64),
			tracker.DailyCalories(e),
			len(e.Exercises),
		))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "당신은 전문 헬스/웰니스 코치입니다. 사용자의 이름은 %s이며, 나이는 %d세입니다.\n", profile.Name, tracker.Age(profile.BirthDate, now))
	fmt.Fprintf(&b, "현재 BMI는 %.1f이며 관리 단계는 [%s]입니다.\n", bmi, profile.Phase.Label())
	if profile.MounjaroActive {
		if profile.MounjaroStartDate != "" {
			fmt.Fprintf(&b, "사용자는 %s부터 마운자로를 사용 중입니다.\n", profile.MounjaroStartDate)
		} else {
			b.WriteString("사용자는 마운자로를 사용 중입니다.\n")
		}
	}
	b.WriteString("\n코칭 지침:\n")
	b.WriteString("1. 식단: 아침/점심/저녁/간식을 분석하고 다이어트식 여부를 판단하세요.\n")
	b.WriteString("2. 운동: 나이에 적합한 강도를 추천하고, 특히 '허리에 좋은 운동' 등 특정 요구사항을 반영하세요.\n")
	b.WriteString("3. 피부: 아침(세안/머리), 저녁(샤워/세안/머리) 루틴에 맞춘 피부 건강 조언을 하세요.\n")
	b.WriteString("4. 마운자로: 효능(식욕억제, 혈당조절)과 부작용 관리에 대해 전문적으로 조언하세요.\n")
	b.WriteString("\n최근 데이터:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n답변은 항상 한국어로 친절하고 전문적으로 작성하세요.")
	return b.String()
}
