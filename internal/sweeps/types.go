// Package sweeps models the sweeps dashboard REST payloads: query
// construction, pagination, envelope decoding and summaries. Payloads are
// read from local files; nothing here performs network I/O.
package sweeps

// MarketType mirrors the backend market_type values.
type MarketType string

const (
	MarketCrypto15Minutes   MarketType = "crypto_market_15_minutes"
	MarketCryptoHourly      MarketType = "crypto_market_hourly"
	MarketCryptoOneDay      MarketType = "crypto_market_one_day"
	MarketCryptoOneWeek     MarketType = "crypto_market_one_week"
	MarketCryptoMonthly     MarketType = "crypto_market_monthly"
	MarketCryptoYearly      MarketType = "crypto_market_yearly"
	MarketCryptoOther       MarketType = "crypto_market_other"
	MarketTechOneMonth      MarketType = "tech_market_one_month"
	MarketTechOther         MarketType = "tech_market_other"
	MarketPoliticsOneWeek   MarketType = "politics_market_one_week"
	MarketPoliticsOneMonth  MarketType = "politics_market_one_month"
	MarketPoliticsOther     MarketType = "politics_market_other"
	MarketCultureOneWeek    MarketType = "culture_market_one_week"
	MarketCultureOther      MarketType = "culture_market_other"
	MarketTemperatureOneDay MarketType = "temperature_market_one_day"
	MarketEarningsOneWeek   MarketType = "earnings_market_one_week"
	MarketDefault           MarketType = "market_default"
)

// SortField is a sweeps sort column.
type SortField string

const (
	SortCreatedAt      SortField = "created_at"
	SortPostOrderValue SortField = "post_order_value"
)

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Period is an aggregation window.
type Period string

const (
	Period1D  Period = "1d"
	Period3D  Period = "3d"
	Period7D  Period = "7d"
	Period1M  Period = "1m"
	PeriodAll Period = "all"
)

// Envelope is the API response wrapper.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Page is a paginated list.
type Page[T any] struct {
	Data    []T  `json:"data"`
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// Market is the subset of Polymarket market fields the dashboard reads.
type Market struct {
	ID             string  `json:"id"`
	Slug           string  `json:"slug"`
	Question       string  `json:"question"`
	ConditionID    string  `json:"conditionId"`
	Active         bool    `json:"active"`
	Closed         bool    `json:"closed"`
	EndDate        string  `json:"endDate"`
	StartDate      string  `json:"startDate"`
	Outcomes       string  `json:"outcomes"`
	OutcomePrices  string  `json:"outcomePrices"`
	ClobTokenIDs   string  `json:"clobTokenIds"`
	BestBid        float64 `json:"bestBid"`
	BestAsk        float64 `json:"bestAsk"`
	Spread         float64 `json:"spread"`
	LastTradePrice float64 `json:"lastTradePrice"`
	VolumeNum      float64 `json:"volumeNum"`
	LiquidityNum   float64 `json:"liquidityNum"`
	Volume24hr     float64 `json:"volume24hr"`
	NegRisk        bool    `json:"negRisk"`
}

// MarketConfig is the per-market-type sweep configuration.
type MarketConfig struct {
	MarketType          MarketType `json:"market_type"`
	SLAtBidPrice        float64    `json:"sl_at_bid_price"`
	SLAtAskPrices       float64    `json:"sl_at_ask_prices"`
	MaxEntrySeconds     int64      `json:"max_entry_seconds"`
	MinEntryMinutes     int64      `json:"min_entry_minutes"`
	MaxDollarValueToBuy float64    `json:"max_dollar_value_to_buy"`
}

// OrderbookLevel is one price level.
type OrderbookLevel struct {
	Size  float64 `json:"size"`
	Price float64 `json:"price"`
}

// SelectedMarket is a market chosen for a sweep.
type SelectedMarket struct {
	Market           Market  `json:"market"`
	Liquidity        float64 `json:"liquidity"`
	BigOddAskSize    float64 `json:"big_odd_ask_size"`
	BigOddAskPrice   float64 `json:"big_odd_ask_price"`
	SmallOddAskSize  float64 `json:"small_odd_ask_size"`
	SmallOddAskPrice float64 `json:"small_odd_ask_price"`
}

// TokenOrder is one posted order.
type TokenOrder struct {
	Side      string  `json:"side"`
	Price     float64 `json:"price"`
	Amount    float64 `json:"amount"`
	TokenID   string  `json:"token_id"`
	OrderType string  `json:"order_type"`
	StartTime int64   `json:"start_time"`
	EndTime   int64   `json:"end_time"`
	Error     string  `json:"error"`
	IsSuccess bool    `json:"is_success"`
}

// PostOrdersStats summarises the posting phase. The backend spells the
// success counter "sucess".
type PostOrdersStats struct {
	EndTime           int64        `json:"end_time"`
	StartTime         int64        `json:"start_time"`
	SuccessPositions  int          `json:"sucess_positions"`
	TokenToPostOrders []TokenOrder `json:"token_to_post_orders"`
}

// Sweep is one sweep execution record.
type Sweep struct {
	ID                 string           `json:"id"`
	MarketID           string           `json:"market_id"`
	MarketSlug         string           `json:"market_slug"`
	MarketQuestion     string           `json:"market_question"`
	MarketStartTime    int64            `json:"market_start_time"`
	MarketEndTime      int64            `json:"market_end_time"`
	MarketDuration     int64            `json:"market_duration"`
	IsSuccess          bool             `json:"is_success"`
	BigOddAskSize      float64          `json:"big_odd_ask_size"`
	BigOddAskPrice     float64          `json:"big_odd_ask_price"`
	BigOddAskValue     float64          `json:"big_odd_ask_value"`
	IsMarketSelected   bool             `json:"is_market_selected"`
	SelectedMarkets    []SelectedMarket `json:"selected_markets"`
	PostOrderStartTime string           `json:"post_order_start_time"`
	PostOrderEndTime   string           `json:"post_order_end_time"`
	PostOrderPrice     float64          `json:"post_order_price"`
	PostOrderSize      float64          `json:"post_order_size"`
	PostOrderValue     float64          `json:"post_order_value"`
	ExecutionTime      int64            `json:"execution_time"`
	SuccessCount       int              `json:"sucess_count"`
	TokenToPostOrders  []TokenOrder     `json:"token_to_post_orders"`
	MarketConfig       MarketConfig     `json:"market_config"`
	BigOddAskOrderbook []OrderbookLevel `json:"big_odd_ask_orderbook"`
	SmallOddAskBook    []OrderbookLevel `json:"small_odd_ask_orderbook"`
	BigOddAskOrder     OrderbookLevel   `json:"big_odd_ask_order"`
	PostOrdersStats    PostOrdersStats  `json:"post_orders_stats"`
	CreatedAt          string           `json:"created_at"`
	UpdatedAt          string           `json:"updated_at"`
	Market             Market           `json:"market"`
	UpdatedMarket      *Market          `json:"updated_market,omitempty"`
}

// SweepAggregatedData is the aggregated sweeps summary for a period.
type SweepAggregatedData struct {
	Period              Period  `json:"period"`
	TotalSweeps         int     `json:"total_sweeps"`
	TotalBigOddAskValue float64 `json:"total_big_odd_ask_value"`
	TotalPostOrderValue float64 `json:"total_post_order_value"`
	SuccessRate         float64 `json:"success_rate"`
	SuccessfulSweeps    int     `json:"successful_sweeps"`
	FailedSweeps        int     `json:"failed_sweeps"`
	StartTime           string  `json:"start_time"`
	EndTime             string  `json:"end_time"`
}

// DailyMetric is one day of sweep results.
type DailyMetric struct {
	Date             string  `json:"date"`
	TotalSweeps      int     `json:"total_sweeps"`
	TotalSentValue   float64 `json:"total_sent_value"`
	MaxPossibleValue float64 `json:"max_possible_value"`
	TotalProfit      float64 `json:"total_profit"`
	TotalLoss        float64 `json:"total_loss"`
	WinSweeps        int     `json:"win_sweeps"`
	LoseSweeps       int     `json:"lose_sweeps"`
	WinRate          float64 `json:"win_rate"`
}

// UserDailyMetric is one wallet's trading activity for one day.
type UserDailyMetric struct {
	ProxyWallet          string  `json:"proxyWallet"`
	Date                 string  `json:"date"`
	TotalTrades          int     `json:"totalTrades"`
	BuyTrades            int     `json:"buyTrades"`
	SellTrades           int     `json:"sellTrades"`
	TotalVolume          float64 `json:"totalVolume"`
	TotalValue           float64 `json:"totalValue"`
	BuyVolume            float64 `json:"buyVolume"`
	BuyValue             float64 `json:"buyValue"`
	SellVolume           float64 `json:"sellVolume"`
	SellValue            float64 `json:"sellValue"`
	AveragePrice         float64 `json:"averagePrice"`
	AverageBuyPrice      float64 `json:"averageBuyPrice"`
	AverageSellPrice     float64 `json:"averageSellPrice"`
	UniqueMarketsTraded  int     `json:"uniqueMarketsTraded"`
	UniqueEventsTraded   int     `json:"uniqueEventsTraded"`
	TotalClosedPositions int     `json:"totalClosedPositions"`
	ProfitablePositions  int     `json:"profitablePositions"`
	LosingPositions      int     `json:"losingPositions"`
	TotalProfit          float64 `json:"totalProfit"`
	TotalLoss            float64 `json:"totalLoss"`
	LargestProfit        float64 `json:"largestProfit"`
	LargestLoss          float64 `json:"largestLoss"`
	WinRate              float64 `json:"winRate"`
}
