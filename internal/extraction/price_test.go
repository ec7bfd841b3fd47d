package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("extractPrice", func() {
	var (
		text  string
		price priceMatch
		ok    bool
	)

	JustBeforeEach(func() {
		price, ok = extractPrice(text)
	})

	When("the line carries a grouped amount", func() {
		BeforeEach(func() {
			text = "Kue Coklat 15.000"
		})

		It("parses it with the separators stripped", func() {
			Expect(ok).To(BeTrue())
			Expect(price.value).To(Equal(15000))
		})
	})

	When("the amount carries a currency prefix and fraction", func() {
		BeforeEach(func() {
			text = "Minyak Rp 15,000.00"
		})

		It("drops the printed fraction instead of folding it in", func() {
			Expect(ok).To(BeTrue())
			Expect(price.value).To(Equal(15000))
		})
	})

	When("several grouped amounts share the line", func() {
		BeforeEach(func() {
			text = "8991002 Sabun 2.500 7.500"
		})

		It("takes the last one as the line total", func() {
			Expect(ok).To(BeTrue())
			Expect(price.value).To(Equal(7500))
		})
	})

	When("only a bare integer ends the line", func() {
		BeforeEach(func() {
			text = "Beras 5kg 75000"
		})

		It("falls back to the trailing digit run", func() {
			Expect(ok).To(BeTrue())
			Expect(price.value).To(Equal(75000))
			Expect(text[price.start:]).To(Equal("75000"))
		})
	})

	When("the trailing run is too short", func() {
		BeforeEach(func() {
			text = "Pen 50"
		})

		It("finds no price", func() {
			Expect(ok).To(BeFalse())
		})
	})

	When("a grouped amount is out of range", func() {
		BeforeEach(func() {
			text = "TV 15.000.000"
		})

		It("rejects the line without trying the bare pattern", func() {
			Expect(ok).To(BeFalse())
		})
	})

	When("the line has no digits at all", func() {
		BeforeEach(func() {
			text = "Terigu Segitiga"
		})

		It("finds no price", func() {
			Expect(ok).To(BeFalse())
		})
	})
})

var _ = Describe("extractQuantity", func() {
	It("reads a multiplier clause anywhere before the price", func() {
		quantity, rest := extractQuantity("Minyak Goreng 2 x 34000 ")
		Expect(quantity).To(Equal(2))
		Expect(rest).To(Equal("Minyak Goreng "))
	})

	It("reads a bare number only at the start", func() {
		quantity, rest := extractQuantity("2 Roti Keju ")
		Expect(quantity).To(Equal(2))
		Expect(rest).To(Equal("Roti Keju "))
	})

	It("does not read a mid-line bare number", func() {
		quantity, rest := extractQuantity("Beras 5kg ")
		Expect(quantity).To(Equal(1))
		Expect(rest).To(Equal("Beras 5kg "))
	})

	It("discards an out-of-bounds multiplier without consuming it", func() {
		quantity, rest := extractQuantity("Gula 150 x ")
		Expect(quantity).To(Equal(1))
		Expect(rest).To(Equal("Gula 150 x "))
	})

	It("defaults to one when nothing matches", func() {
		quantity, rest := extractQuantity("Sabun Mandi ")
		Expect(quantity).To(Equal(1))
		Expect(rest).To(Equal("Sabun Mandi "))
	})
})

var _ = Describe("normalizeName", func() {
	It("collapses whitespace runs", func() {
		name, ok := normalizeName("  Susu   Kotak  ")
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("Susu Kotak"))
	})

	It("strips a trailing currency marker", func() {
		name, ok := normalizeName("Selai Rp ")
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("Selai"))
	})

	It("rejects names that are too short", func() {
		_, ok := normalizeName("A")
		Expect(ok).To(BeFalse())
	})

	It("rejects purely numeric leftovers", func() {
		_, ok := normalizeName("18500")
		Expect(ok).To(BeFalse())
	})

	It("rejects punctuation-only leftovers", func() {
		_, ok := normalizeName("-- ** ..")
		Expect(ok).To(BeFalse())
	})

	It("rejects empty input", func() {
		_, ok := normalizeName("")
		Expect(ok).To(BeFalse())
	})
})
