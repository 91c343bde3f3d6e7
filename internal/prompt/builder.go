// Package prompt builds the instruction text sent to the vision model.
// Building is deterministic: identical subject and image role always
// produce identical text, so replies are cacheable by image digest.
package prompt

import (
	"fmt"

	"github.com/findmymarket/screening-agent/internal/models"
)

// responseFormat is the literal schema the model must echo back as pure
// JSON, shared by every subject variant. The score bands and the
// recommendation rule are advisory context for the model; the screener
// re-derives the recommendation locally from score and red flag count.
const responseFormat = `반드시 아래 JSON 형식으로만 응답하세요. 다른 텍스트, 마크다운, 설명 없이 순수 JSON만:

{
  "image_type": "receipt | product_photo | order_screenshot | medical_document | other | unidentifiable",
  "product_or_procedure": "이미지에서 식별된 제품명 또는 시술명 (없으면 null)",
  "brand_or_clinic": "브랜드명 또는 병원/기관명 (없으면 null)",
  "date_detected": "YYYY-MM-DD 또는 null",
  "amount_detected": "금액 문자열 또는 null",
  "category_match": true 또는 false,
  "relevance_score": 0.0에서 1.0 사이 숫자,
  "confidence": "high | medium | low",
  "red_flags": ["발견된 의심 요소 목록, 없으면 빈 배열"],
  "recommendation": "approve | review | reject",
  "reasoning": "한국어로 판단 근거 2-3문장"
}

점수 기준:
- 0.9~1.0: 완벽한 일치 (시술/제품 명확, 날짜/금액 확인 가능)
- 0.7~0.89: 강한 일치 (관련 시술/제품이지만 일부 정보 부족)
- 0.5~0.69: 부분 일치 (같은 분야이나 다른 시술/제품)
- 0.3~0.49: 약한 일치 (관련 있으나 카테고리 불일치)
- 0.0~0.29: 무관 (완전히 다른 카테고리)

recommendation 기준:
- approve: relevance_score >= 0.7 AND red_flags 없음
- review: relevance_score 0.5~0.69 OR red_flags 1개
- reject: relevance_score < 0.5 OR red_flags 2개 이상`

const productTemplate = `당신은 시장조사 인터뷰 참가자 스크리닝 전문가입니다.

참가자가 인터뷰 대상 제품/서비스로 "%[1]s"을(를) 선택했습니다.
이 참가자가 업로드한 이미지(%[2]s)를 분석하여,
"%[1]s"과의 관련성을 검증해주세요.

분석 항목:
1. 이미지 유형 식별 (영수증/제품사진/주문내역/의료서류/기타/식별불가)
2. 이미지에서 식별되는 제품명, 브랜드명, 시술명, 기관명
3. 날짜, 금액 등 정보가 보이면 추출
4. "%[1]s"과의 관련성 판단
5. 의심 요소 탐지:
   - 편집/합성 흔적
   - 인터넷에서 다운받은 스톡 이미지
   - 비현실적 금액
   - 해상도가 지나치게 낮은 이미지
   - 날짜가 비현실적 (미래, 10년 이상 과거)`

// Build produces the full instruction for one screening. A subject resolved
// from the category table brings its own instruction text; a free-text
// product name goes through the generic screening template.
func Build(subject models.Subject, role models.ImageRole) string {
	if subject.Instruction != "" {
		return subject.Instruction + "\n\n" + responseFormat
	}

	return fmt.Sprintf(productTemplate, subject.ProductName, roleDescription(role)) + "\n\n" + responseFormat
}

func roleDescription(role models.ImageRole) string {
	if role == models.ImageRoleReceipt {
		return "영수증, 결제 내역, 주문 내역 등 구매/시술 증빙 자료"
	}
	return "제품 사진, 패키지, 시술 관련 사진 등"
}
