package matchbook

import (
	"testing"

	"github.com/cockroachdb/apd"
)

func benchPrices(n int64) []apd.Decimal {
	prices := make([]apd.Decimal, n)
	for i := int64(0); i < n; i++ {
		prices[i] = *apd.New(1000+i, -1) // 100.0, 100.1, ...
	}
	return prices
}

func BenchmarkOrderBook_SubmitLimit(b *testing.B) {
	_, ob := setup()
	prices := benchPrices(10)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		side := SideSell
		if i%2 == 0 {
			side = SideBuy
		}
		ob.SubmitLimit(side, prices[i%10], 100)
	}
}

func BenchmarkOrderBook_SubmitLimitNoCross(b *testing.B) {
	_, ob := setup()
	bidPrices := benchPrices(10)
	askPrices := make([]apd.Decimal, 10)
	for i := int64(0); i < 10; i++ {
		askPrices[i] = *apd.New(2000+i, -1) // far above every bid
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			ob.SubmitLimit(SideBuy, bidPrices[i%10], 100)
		} else {
			ob.SubmitLimit(SideSell, askPrices[i%10], 100)
		}
	}
}

func BenchmarkOrderBook_Cancel(b *testing.B) {
	_, ob := setup()
	prices := benchPrices(10)
	ids := make([]uint64, b.N)
	for i := 0; i < b.N; i++ {
		ids[i] = ob.SubmitLimit(SideBuy, prices[i%10], 100)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ob.Cancel(ids[i])
	}
}

func BenchmarkOrderBook_MarketSweep(b *testing.B) {
	_, ob := setup()
	askPrice := *apd.New(1000, -1)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		ob.SubmitLimit(SideSell, askPrice, 100)
		b.StartTimer()
		ob.SubmitMarket(SideBuy, 100)
	}
}
