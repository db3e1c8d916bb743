package invest

// PETR4 is a share-based test quote at R$ 32,50.
var PETR4 = NewQuote("PETR4", "Petrobras PN", ShareBased, BRL(32.5)).WithType("stock")

// HGLG11 is a real-estate fund quote at R$ 158,37.
var HGLG11 = NewQuote("HGLG11", "CSHG Logística", ShareBased, BRL(158.37)).WithType("fii")

// CDB is a fixed-income test quote.
var CDB = NewQuote("CDB-XP-2027", "CDB XP 2027", FixedIncome, BRL(0)).WithType("cdb")

// NO is a helper for test to create money from const with no currency set.
func NO(v float64) Money { return M(v, "") }

// ptr returns a pointer to m, for balances.
func ptr(m Money) *Money { return &m }
