package report

import (
	"fmt"
	"strings"

	"psyfind/internal/dsm"
)

// fallbackReport renders the deterministic report used whenever generation
// is unavailable or fails.
func fallbackReport(candidates []dsm.Candidate, lang string) string {
	top := candidates
	if len(top) > 3 {
		top = top[:3]
	}

	var b strings.Builder
	if lang == "zh" {
		b.WriteString(`# 精神健康評估報告

## 臨床印象
基於提供的症狀描述和DSM-5-TR標準分析，建議進行專業心理健康評估。

## 初步分析
`)
		if len(top) > 0 {
			b.WriteString("根據症狀分析，可能需要評估以下狀況：\n")
			for _, cand := range top {
				fmt.Fprintf(&b, "- %s (符合度: %.1f%%)\n", cand.Disorder, cand.Confidence)
			}
		}
		b.WriteString(`
## 建議事項
1. **立即行動**: 尋求合格心理健康專業人員的評估
2. **安全評估**: 如有自傷或傷害他人想法，請立即聯繫急診服務
3. **支持系統**: 與信任的家人或朋友分享您的困擾
4. **自我照護**: 維持規律作息、適度運動、均衡飲食

## 重要提醒
此分析僅供參考，不能替代專業醫療診斷。請務必諮詢合格的心理健康專業人員。
`)
		return b.String()
	}

	b.WriteString(`# Mental Health Assessment Report

## Clinical Impression
Based on the symptom description and DSM-5-TR criteria analysis, professional mental health evaluation is recommended.

## Initial Analysis
`)
	if len(top) > 0 {
		b.WriteString("Based on symptom analysis, evaluation may be warranted for:\n")
		for _, cand := range top {
			fmt.Fprintf(&b, "- %s (%.1f%% symptom match)\n", cand.Disorder, cand.Confidence)
		}
	}
	b.WriteString(`
## Recommendations
1. **Immediate Action**: Seek evaluation from qualified mental health professional
2. **Safety Assessment**: If experiencing thoughts of self-harm or harm to others, contact emergency services immediately
3. **Support System**: Share concerns with trusted family members or friends
4. **Self-Care**: Maintain regular sleep schedule, exercise, and balanced nutrition

## Important Notice
This analysis is for informational purposes only and cannot replace professional medical diagnosis. Please consult with qualified mental health professionals.
`)
	return b.String()
}
