package live

import (
	"fmt"
	"strings"

	"github.com/liveminutes-team/liveminutes/internal/domain/entities"
)

const summarySystemPrompt = `あなたは議事録作成の専門家です。
会議の文字起こしから、以下の形式のJSON形式で議事録を作成してください。
必ずJSON形式のみを返し、他の説明文や説明は一切含めないでください。

{
  "summary": "会議全体の要約（2-3文）",
  "key_points": ["重要ポイント1", "重要ポイント2", "重要ポイント3"],
  "action_items": [
    {"task": "具体的なタスク内容", "assignee": "担当者名（不明な場合は空文字）"}
  ],
  "decisions": ["決定事項1", "決定事項2"]
}`

func summaryUserPrompt(fullText string) string {
	return fmt.Sprintf("以下の会議内容から議事録を作成してください：\n\n%s", fullText)
}

const facilitatorSystemPrompt = `あなたは会議の進行を支援するファシリテーターです。
会議の現在のフェーズと直近の発言をもとに、参加者への短い進行メッセージを1つ作成してください。
メッセージは2文以内で、次に何をすべきかを具体的に示してください。`

var phaseGuidance = map[entities.Phase]string{
	entities.PhaseIntroduction: "自己紹介と本日の目的の確認を促してください。",
	entities.PhaseSharing:      "各参加者からの情報共有を促してください。",
	entities.PhaseDiscussion:   "論点を深める議論を促してください。",
	entities.PhaseWrapUp:       "決定事項と次のアクションの確認を促してください。",
}

func facilitatorUserPrompt(phase entities.Phase, progress float64, recent []*entities.Transcript) string {
	var b strings.Builder
	fmt.Fprintf(&b, "現在のフェーズ: %s（進行率 %.0f%%）\n", phase, progress)
	if guidance, ok := phaseGuidance[phase]; ok {
		b.WriteString(guidance)
		b.WriteString("\n")
	}
	b.WriteString("\n直近の発言:\n")
	if len(recent) == 0 {
		b.WriteString("（まだ発言はありません）\n")
	}
	for _, t := range recent {
		fmt.Fprintf(&b, "%s %s\n", formatOffset(t.Timestamp), t.Text)
	}
	return b.String()
}

var personalityPrompts = map[entities.Personality]string{
	entities.PersonalityLogical:    "あなたは論理的で理屈っぽいディベーター です。相手の意見に対して、論理的な矛盾点を指摘し、データや事例をもとに反論してください。",
	entities.PersonalityCreative:   "あなたは創造的で新しい視点を提供するディベーター です。相手の意見に対して、従来の考え方にとらわれない新しい可能性や視点を提示してください。",
	entities.PersonalityDiplomatic: "あなたは相手の意見を尊重しながら、丁寧に異なる見方を提示するディベーター です。相手の意見の良い点を認めながらも、別の立場からの見方を述べてください。",
	entities.PersonalityAggressive: "あなたは相手の弱点を突く攻撃的なディベーター です。相手の意見の不正確さ、根拠の不足、矛盾点を鋭く指摘してください。",
}

func personalitySystemPrompt(p entities.Personality) string {
	if prompt, ok := personalityPrompts[p]; ok {
		return prompt
	}
	return personalityPrompts[entities.PersonalityLogical]
}

func responderUserPrompt(name string, recent []*entities.Transcript) string {
	var b strings.Builder
	fmt.Fprintf(&b, "あなたの名前は「%s」です。以下は会議の直近の発言です:\n\n", name)
	for _, t := range recent {
		fmt.Fprintf(&b, "%s %s\n", formatOffset(t.Timestamp), t.Text)
	}
	b.WriteString("\nこの流れに対して、あなたの意見や反論を3文以内で述べてください。")
	return b.String()
}

// formatOffset renders a session-relative offset in seconds as [MM:SS].
func formatOffset(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("[%02d:%02d]", total/60, total%60)
}
