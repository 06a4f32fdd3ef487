package advisor

import (
	"fmt"
	"strings"

	"github.com/pbaille/trip/internal/domain"
	"github.com/pbaille/trip/internal/itinerary"
)

func buildTipPrompt(city string, act domain.Activity) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "我正在%s旅遊。\n", city)
	fmt.Fprintf(&sb, "我目前計劃去：%s，時間是：%s。\n", act.Title, act.Time)
	fmt.Fprintf(&sb, "類別是：%s。\n", act.Category)
	if act.Location != "" {
		fmt.Fprintf(&sb, "地點：%s。\n", act.Location)
	}
	sb.WriteString("\n請給我一個關於這個地點或活動的「簡短、有趣且實用」的旅行建議（繁體中文）。\n")
	sb.WriteString("請保持在 30 字以內。\n")

	switch act.Category {
	case domain.Food:
		sb.WriteString("如果是食物，推薦必點菜色。\n")
	case domain.Sightseeing:
		sb.WriteString("如果是景點，推薦拍照角度。\n")
	}

	return sb.String()
}

func buildExpensePrompt(city string, total int, activities []domain.Activity) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "我正在%s旅遊，目前預估日幣總花費為 ¥%d。\n", city, total)

	totals := itinerary.TotalCostByCategory(activities, domain.JPY)
	if len(totals) > 0 {
		sb.WriteString("各類別花費（日幣）：\n")
		for _, c := range domain.Categories() {
			if v, ok := totals[c]; ok {
				fmt.Fprintf(&sb, "- %s：¥%d\n", c.Label(), v)
			}
		}
	}

	var big []string
	for _, a := range activities {
		if a.Currency == domain.JPY && a.Cost > 0 {
			big = append(big, fmt.Sprintf("%s（¥%d）", a.Title, a.Cost))
		}
	}
	if len(big) > 0 {
		sb.WriteString("有花費的行程：")
		sb.WriteString(strings.Join(big, "、"))
		sb.WriteString("\n")
	}

	sb.WriteString("\n請用繁體中文給我一段簡短的花費分析與省錢建議，保持在 50 字以內。\n")

	return sb.String()
}
