package synth

import "biddashboard/models"

// AllRegions sentinel "전체" в фильтрах означает отсутствие ограничения
const AllRegions = "전체"

// Regions регионы без sentinel-значения
var Regions = []string{
	"서울", "부산", "대구", "인천", "광주", "대전", "울산",
	"경기", "강원", "충북", "충남", "전북", "전남", "경북", "경남", "제주",
}

var organizations = []string{
	"조달청", "한국전력공사", "한국수자원공사", "KORAIL", "한국도로공사",
	"LH공사", "국가철도공단", "경남도청", "진주시청", "한국토지주택공사",
}

var keywords = map[models.Category][]string{
	models.CategoryTelecom:    {"통신공사", "네트워크 고도화", "CCTV 설치", "전산 유지보수", "광케이블 가설", "서버 인프라 구축"},
	models.CategoryElectrical: {"전기공사", "변전설비 보수", "LED 조명 교체", "태양광 발전설비", "배전반 설치", "가로등 유지보수"},
	models.CategoryFireSafety: {"소방시설 보수", "스프링클러 설치", "화재감지기 교체", "소방정밀점검", "소방펌프 수리", "제연설비 공사"},
}

var companyPrefixes = []string{"태양", "진주", "한울", "세종", "미래", "대호", "현대"}

var projectScopes = map[models.Category]string{
	models.CategoryTelecom:    "본 사업은 발주처 내 노후화된 네트워크 장비를 교체하여 초고속 통신망의 안정성을 확보하고, 지능형 관제 시스템을 도입하여 디지털 재난 대응 역량을 강화하는 것을 목적으로 합니다.",
	models.CategoryElectrical: "사업지 내 노후 변압기 및 배전반을 교체하고, 에너지 절감을 위한 지능형 LED 조명 시스템과 태양광 발전 연동 인터페이스를 구축하는 공사입니다.",
	models.CategoryFireSafety: "화재 예방 및 신속 대응을 위해 소방 펌프, 수신기 등 핵심 설비를 정비하고, 법적 기준에 부합하는 스프링클러 헤드 및 화재 감지 센서 네트워크를 구성하는 공사입니다.",
}

var specDetails = map[models.Category][]string{
	models.CategoryTelecom: {
		"국가 표준(KS) 규격 준수",
		"사전 현장 설명회 참여 필수",
		"정보통신공사업 면허 보유",
		"하자 보수 보증 기간 2년 확보",
		"설계서 및 시방서 의거 정밀 시공",
	},
	models.CategoryElectrical: {
		"국가 표준(KS) 규격 준수",
		"사전 현장 설명회 참여 필수",
		"전기공사업 면허 보유",
		"하자 보수 보증 기간 2년 확보",
		"설계서 및 시방서 의거 정밀 시공",
	},
	models.CategoryFireSafety: {
		"국가화재안전기준(NFSC) 준수",
		"사전 현장 설명회 참여 필수",
		"소방시설공사업 등록 필수",
		"하자 보수 보증 기간 2년 확보",
		"설계서 및 시방서 의거 정밀 시공",
	},
}

var equipment = map[models.Category][]string{
	models.CategoryTelecom:    {"L3 스위치 (주요 제조사)", "Cat.6A 케이블 (LS전선 등)", "NMS 보안 서버", "CCTV 돔 카메라"},
	models.CategoryElectrical: {"몰드 변압기", "고효율 LED 등기구", "디지털 배전반", "비상 발전기 제어반"},
	models.CategoryFireSafety: {"R형 화재 수신기", "습식 스프링클러 헤드", "소방 펌프 제어반", "광전식 연기 감지기"},
}

const (
	noticeLink = "https://www.g2b.go.kr"
	winnerFax  = "055-758-0000"

	minBasePrice   = 30_000_000
	basePriceRange = 4_000_000_000

	minParticipants   = 3
	participantsRange = 5

	minBidRate   = 87.0
	bidRateRange = 10.0
)
