package category

// Default returns the built-in category table. Instructions are written in
// Korean because the screening operators and participants are Korean; the
// vision model is asked to answer the structured fields in the shared JSON
// schema regardless of language.
func Default() *Table {
	return NewTable(map[string]Profile{
		"botox_filler": {
			Label: "보톡스/필러",
			Instruction: `이 이미지를 분석하여 보톡스 또는 필러 시술과의 관련성을 검증해주세요.

확인 사항:
1. 이미지 유형: 영수증, 시술 확인서, 진료비 세부산출내역서, 병원 카드결제 내역, 앱 예약 내역 등
2. 시술 내용: 보톡스, 필러, 스킨보톡스, 리쥬란, 주름 시술 관련 키워드
3. 의료기관 정보: 피부과, 성형외과, 메디컬 스파 등
4. 날짜: 최근 6개월 이내인지
5. 의심 요소: 편집 흔적, 스톡 이미지, 비현실적 금액, 해상도 문제`,
		},
		"laser_treatment": {
			Label: "레이저 시술",
			Instruction: `이 이미지를 분석하여 레이저 피부 시술과의 관련성을 검증해주세요.

확인 사항:
1. 이미지 유형: 영수증, 시술 확인서, 진료비 내역, 카드결제 내역, 예약 내역 등
2. 시술 내용: 레이저토닝, 피코레이저, IPL, 프락셀, 레이저 리프팅 등
3. 의료기관 정보: 피부과, 레이저 클리닉 등
4. 날짜: 최근 6개월 이내인지
5. 의심 요소: 편집 흔적, 스톡 이미지, 비현실적 금액`,
		},
		"supplements": {
			Label: "건강기능식품",
			Instruction: `이 이미지를 분석하여 건강기능식품(유산균, 비타민, 오메가3, 콜라겐 등) 구매와의 관련성을 검증해주세요.

확인 사항:
1. 이미지 유형: 제품 사진, 구매 영수증, 온라인 주문 내역, 제품 패키지 등
2. 제품 정보: 브랜드명, 제품명, 성분, "건강기능식품" 인증 마크
3. 구매 채널: 올리브영, 쿠팡, 아이허브, 약국 등
4. 날짜: 최근 6개월 이내 구매인지
5. 의심 요소: 온라인에서 다운받은 이미지, 스톡사진, 해상도 문제`,
		},
		"cosmetics": {
			Label: "화장품",
			Instruction: `이 이미지를 분석하여 화장품(스킨케어, 메이크업, 선케어 등) 구매와의 관련성을 검증해주세요.

확인 사항:
1. 이미지 유형: 제품 사진, 구매 영수증, 온라인 주문 내역, 제품 패키지 등
2. 제품 정보: 브랜드명, 제품명, 제품 유형(세럼, 크림, 선크림 등)
3. 구매 채널: 올리브영, 시코르, 백화점, 온라인몰 등
4. 날짜: 최근 6개월 이내 구매인지
5. 의심 요소: 광고 이미지, 스톡사진, 해상도 문제`,
		},
		"dental": {
			Label: "치과 시술",
			Instruction: `이 이미지를 분석하여 치과 시술(임플란트, 교정, 미백, 라미네이트 등)과의 관련성을 검증해주세요.

확인 사항:
1. 이미지 유형: 영수증, 진료비 내역, 치료계획서, 카드결제 내역 등
2. 시술 내용: 임플란트, 교정, 미백, 라미네이트, 크라운 등
3. 의료기관: 치과의원, 치과병원
4. 날짜: 최근 12개월 이내인지
5. 의심 요소: 편집 흔적, 비현실적 금액`,
		},
		"eye_surgery": {
			Label: "시력교정 (라식/라섹)",
			Instruction: `이 이미지를 분석하여 시력교정 수술(라식, 라섹, 스마일라식, 렌즈삽입술 등)과의 관련성을 검증해주세요.

확인 사항:
1. 이미지 유형: 영수증, 수술 확인서, 진료비 내역, 예약 내역 등
2. 시술 내용: 라식, 라섹, 스마일라식, ICL, 렌즈삽입술 등
3. 의료기관: 안과의원, 안과병원
4. 날짜: 최근 12개월 이내인지
5. 의심 요소: 편집 흔적, 비현실적 금액`,
		},
	})
}
