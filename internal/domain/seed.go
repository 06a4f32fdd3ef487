package domain

// DefaultItinerary returns a fresh copy of the built-in Fukuoka trip
func DefaultItinerary() []DaySchedule {
	return []DaySchedule{
		{
			ID:      "day1",
			Date:    "2025-10-31",
			DayName: "10/31 (五)",
			Weather: &WeatherInfo{Location: "福岡", Temp: 19, Condition: "晴時多雲", Icon: "⛅", Clothing: "長袖上衣，早晚加件薄外套"},
			Activities: []Activity{
				{ID: "d1-flight", Time: "10:30", Title: "抵達福岡機場", Location: "福岡空港", Category: Transport, Currency: JPY},
				{ID: "d1-subway", Time: "11:30", Title: "地鐵前往博多", Location: "博多駅", Category: Transport, Cost: 260, Currency: JPY},
				{ID: "d1-hotel", Time: "12:30", Title: "飯店寄放行李", Location: "博多駅前", Category: Accommodation, Currency: JPY, Notes: "15:00 後可入住"},
				{ID: "d1-ramen", Time: "13:00", Title: "一蘭拉麵總本店", Location: "一蘭 本社総本店", Category: Food, Cost: 1180, Currency: JPY},
				{ID: "d1-canal", Time: "15:00", Title: "博多運河城", Location: "キャナルシティ博多", Category: Shopping, Currency: JPY},
				{ID: "d1-yatai", Time: "19:00", Title: "中洲屋台", Location: "中洲屋台", Category: Food, Cost: 3000, Currency: JPY},
			},
		},
		{
			ID:      "day2",
			Date:    "2025-11-01",
			DayName: "11/01 (六)",
			Weather: &WeatherInfo{Location: "太宰府", Temp: 17, Condition: "晴", Icon: "☀️", Clothing: "舒適步行鞋，帶件針織外套"},
			Activities: []Activity{
				{ID: "d2-train", Time: "09:00", Title: "西鐵電車往太宰府", Location: "西鉄福岡(天神)駅", Category: Transport, Cost: 420, Currency: JPY},
				{ID: "d2-shrine", Time: "10:00", Title: "太宰府天滿宮", Location: "太宰府天満宮", Category: Sightseeing, Currency: JPY},
				{ID: "d2-mochi", Time: "11:30", Title: "梅枝餅", Location: "太宰府天満宮 参道", Category: Food, Cost: 150, Currency: JPY, Notes: "參道上現烤"},
				{ID: "d2-starbucks", Time: "12:00", Title: "隈研吾星巴克", Location: "スターバックス 太宰府天満宮表参道店", Category: Food, Cost: 700, Currency: JPY},
				{ID: "d2-tenjin", Time: "15:00", Title: "天神地下街", Location: "天神地下街", Category: Shopping, Currency: JPY},
				{ID: "d2-motsunabe", Time: "18:30", Title: "牛腸鍋晚餐", Location: "もつ鍋 一慶", Category: Food, Cost: 4000, Currency: JPY},
			},
		},
		{
			ID:      "day3",
			Date:    "2025-11-02",
			DayName: "11/02 (日)",
			Weather: &WeatherInfo{Location: "門司港", Temp: 18, Condition: "多雲", Icon: "☁️", Clothing: "海邊風大，建議防風外套"},
			Activities: []Activity{
				{ID: "d3-jr", Time: "09:30", Title: "JR 前往門司港", Location: "門司港駅", Category: Transport, Cost: 1310, Currency: JPY},
				{ID: "d3-retro", Time: "11:00", Title: "門司港懷舊區散步", Location: "門司港レトロ", Category: Sightseeing, Currency: JPY},
				{ID: "d3-curry", Time: "12:30", Title: "燒咖哩午餐", Location: "門司港 焼きカレー", Category: Food, Cost: 1500, Currency: JPY},
				{ID: "d3-free", Time: "15:00", Title: "自由活動", Category: Flexible, Currency: JPY},
			},
		},
		{
			ID:      "day4",
			Date:    "2025-11-03",
			DayName: "11/03 (一)",
			Weather: &WeatherInfo{Location: "福岡", Temp: 16, Condition: "陰短暫雨", Icon: "🌦️", Clothing: "攜帶折傘，穿防潑水外套"},
			Activities: []Activity{
				{ID: "d4-ohori", Time: "09:00", Title: "大濠公園晨走", Location: "大濠公園", Category: Sightseeing, Currency: JPY},
				{ID: "d4-souvenir", Time: "11:00", Title: "博多站買伴手禮", Location: "博多駅 マイング", Category: Shopping, Cost: 5000, Currency: JPY},
				{ID: "d4-airport", Time: "14:00", Title: "前往機場", Location: "福岡空港 国際線", Category: Transport, Cost: 310, Currency: JPY},
				{ID: "d4-dutyfree", Time: "15:30", Title: "機場免稅店", Location: "福岡空港 国際線", Category: Shopping, Cost: 1500, Currency: TWD, Notes: "刷台灣信用卡"},
			},
		},
	}
}
