package catalog

const imageBase = "https://d1umvcecpsu7ql.cloudfront.net/storage/uploads/products/"

func seedProduct(id int, name string, price int, cat Category, img string, today, advance int) Product {
	return Product{
		ID:           id,
		Name:         name,
		Price:        price,
		Image:        imageBase + img + "?w=512",
		Category:     cat,
		Channel:      ChannelBoth,
		TodayStock:   today,
		AdvanceStock: advance,
		TotalStock:   today + advance,
		IsAvailable:  today+advance > 0,
	}
}

// DefaultProducts returns the catalog written on first run, or whenever
// the persisted payload turns out to be unreadable.
func DefaultProducts() []Product {
	return []Product{
		seedProduct(1, "くるみぱん", 173, CategorySoft, "ZxjxLyytORue1foPjDwFbRCvcj6eXDWYmqvahUre.jpg", 8, 7),
		seedProduct(2, "ぶどうぱん", 173, CategorySoft, "zfu8QOrZy6gPLPWYLfQlJHTyvOw6CrSXN1ByXIdr.jpg", 6, 6),
		seedProduct(3, "クランベリークリームチーズ", 291, CategorySoft, "805LRi3WtYU6uQG4MaTlO7GVUa1RxJ2vg7t1R7KD.png", 3, 5),
		seedProduct(4, "小倉ほいっぷ", 281, CategorySoft, "ni99PvZarExik5B9HAAeMvy6SIWO3r2ngjOb8dv5.jpg", 4, 6),
		seedProduct(5, "あんぱん", 259, CategorySoft, "dDCFbMWQ5TunuH5vRDmmY3Pp20zjGF5K82hm6iXA.jpg", 0, 0),
		seedProduct(6, "ゆずあんぱん", 281, CategorySoft, "1Rc342FgG9BL69mdCDxQFWKH9m8gqwbDa5SB8A0W.jpg", 2, 4),
		seedProduct(7, "まるぱん", 137, CategorySoft, "cg4w7lfcx8aFqitxS9vzPmmwIEmQIyliNaQrpXnZ.jpg", 12, 8),
		seedProduct(8, "おさとうぱん", 173, CategorySoft, "YsSrL42LOxBFicet4kSfckSix7eDRPlsfAQSUL8Q.jpg", 7, 7),
		seedProduct(9, "ほいっぷサンド", 227, CategorySoft, "jMe1jNgDtEjEi0elWdMNFXaqRRVHaVlCCSN9j5dV.jpg", 0, 3),
		seedProduct(10, "チョコレートほいっぷサンド", 227, CategorySoft, "mMigc2JQ3o748o16qRLkB4xnidtlfbynYLEjnioq.jpg", 1, 4),
		seedProduct(11, "ぼうしぱん", 248, CategorySoft, "JhctqRKT4Z2ZEjeYy7XXws6nMlRTZJIdDHfoK9An.jpg", 3, 4),
		seedProduct(12, "ハムぱん", 227, CategorySoft, "VT63lVHEOM0pE475ISiPQ9evmX66svUCGWSSdfNj.jpg", 4, 5),
		seedProduct(13, "うぃんなーぱん", 151, CategorySoft, "EmQkuAM4LW2y6TUMRSadXXGsoowZPWInDQJG39yL.jpg", 6, 5),
		seedProduct(14, "コーンぱん", 205, CategorySoft, "TXtRipMOdycgXTtrFD0oIiH4CdVmPulQi61Vn95i.jpg", 0, 2),
		seedProduct(15, "マヨたまぱん", 248, CategorySoft, "AZ7cjJcJuJfGAvYcZlUugwFqwzqU2BQrhFOPva5d.jpg", 8, 5),
		seedProduct(16, "焼きカレーパン", 248, CategorySoft, "4P5u73i54Q8Q9zFwCeG9JzJnuwTM9qsBq1DTv8uQ.jpg", 2, 2),
		seedProduct(17, "あんばたーサンド", 259, CategorySoft, "JOgv0eyvwZUkzIfxIsGs6tpuT8HnJrVBJqExxBFu.jpg", 0, 1),
		seedProduct(18, "ベーコンチーズぱん", 227, CategorySoft, "EpphBRlMEYA7sNH9Rutk6BLhmLFWKIv7QfBd5zeH.jpg", 9, 7),
		seedProduct(19, "バゲット(L)", 399, CategoryHard, "UvNuQlC805L424NQvJHFvv7RIZdpHWZh9v3Fdf1h.jpg", 2, 3),
		seedProduct(20, "バゲット(S)", 261, CategoryHard, "lCwhcCJie57BeFIc3wn9G5Fm1bDJ4iHLwEam68gG.jpg", 4, 4),
		seedProduct(21, "フィセル", 281, CategoryHard, "bqeNeWVr000UCmcpmfpJzwUEnY48ozFcFzL2e3Dd.jpg", 1, 2),
		seedProduct(22, "プチちょこ", 173, CategoryHard, "IjdAyVvejkkLyDhbme3zmB21HJhZeQRKGgaGeSP2.jpg", 7, 5),
		seedProduct(23, "小倉フランス", 173, CategoryHard, "FD4K0HqU5CillmtO6vRPiW76dTd89p90rij4zyZV.jpg", 3, 4),
		seedProduct(24, "しおバター", 335, CategoryHard, "wdugFVM6K4rmiRgMnLBYVXtDxzMh2OG5Sh5sQURT.jpg", 0, 0),
		seedProduct(25, "シュガーバター", 335, CategoryHard, "Sq68sid2EoKQ1mLaf32HoNCqWq0Jhc9FJCdpWtvz.jpg", 2, 2),
		seedProduct(26, "じゃがちー", 389, CategoryHard, "ngMjWBnePmB9R7uIF5GSQMJOPd8qv8UPFs7BNR8A.jpg", 1, 1),
		seedProduct(27, "ベーコンエピ", 410, CategoryHard, "mnl9RL1FYtaMhT62rnnGx5ip1JaXjM5ivbONucwd.jpg", 3, 3),
		seedProduct(28, "くるみレーズンバター", 335, CategoryHard, "gl7f2sDN0zK49NJ2KOU6xfC7gcDx1JipsoEceBOO.jpg", 0, 1),
		seedProduct(29, "くるみレーズンばとん", 313, CategoryHard, "ZG4PvP7J8BmzyuhyAhzZU8svYtB03v4ifF03fdbs.jpg", 5, 4),
		seedProduct(30, "クランベリーバター", 335, CategoryHard, "AUiBX7rMDszXeOtucL3eUCMfR1Vnut7Gz7Ltwf2h.jpg", 2, 3),
		seedProduct(31, "クランベリーばとん", 313, CategoryHard, "OTRqzpMRrCXxle3pdrpq57OHF8kupSK7AtuD6tzW.jpg", 6, 5),
	}
}
