package extraction

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("StructuredBackend", func() {
	var (
		backend *StructuredBackend
		raw     string
		receipt *Receipt
		err     error
	)

	BeforeEach(func() {
		backend = NewStructuredBackend()
	})

	JustBeforeEach(func() {
		receipt, err = backend.Extract(raw)
	})

	When("parsing a valid response", func() {
		BeforeEach(func() {
			raw = `{"store_name": "Indomaret", "items": [
				{"name": "Susu", "quantity": 2, "unit_price": 18500, "total_price": 37000},
				{"name": "Roti", "quantity": 1, "unit_price": 15000, "total_price": 15000}
			]}`
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should keep the store name", func() {
			Expect(receipt.StoreName).To(Equal("Indomaret"))
		})

		It("should keep every item", func() {
			Expect(receipt.Items).To(HaveLen(2))
			Expect(receipt.Items[0].Name).To(Equal("Susu"))
			Expect(receipt.Items[0].Quantity).To(Equal(2))
			Expect(receipt.Items[0].UnitPrice).To(Equal(18500))
			Expect(receipt.Items[0].TotalPrice).To(Equal(37000))
		})

		It("should derive the total from the items", func() {
			Expect(receipt.TotalAmount).To(Equal(52000))
		})

		It("should carry the structured confidence constant", func() {
			Expect(receipt.Confidence).To(Equal(StructuredConfidence))
		})
	})

	When("the response is wrapped in markdown code blocks", func() {
		BeforeEach(func() {
			raw = "```json\n{\"store_name\": \"Toko\", \"items\": [{\"name\": \"Teh\", \"total_price\": 5000}]}\n```"
		})

		It("slices the JSON out of the fences", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(receipt.StoreName).To(Equal("Toko"))
			Expect(receipt.Items).To(HaveLen(1))
		})
	})

	When("prose surrounds the JSON object", func() {
		BeforeEach(func() {
			raw = `Here is the receipt: {"store_name": "Toko", "items": [{"name": "Teh", "total_price": 5000}]} Hope this helps!`
		})

		It("still finds the object", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(receipt.Items).To(HaveLen(1))
		})
	})

	When("fields arrive as quoted numbers", func() {
		BeforeEach(func() {
			raw = `{"store_name": "Toko", "items": [{"name": "Teh", "quantity": "2", "unit_price": "5000", "total_price": "10000"}]}`
		})

		It("coerces them", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(receipt.Items[0].Quantity).To(Equal(2))
			Expect(receipt.Items[0].UnitPrice).To(Equal(5000))
			Expect(receipt.Items[0].TotalPrice).To(Equal(10000))
		})
	})

	When("fields are missing or null", func() {
		BeforeEach(func() {
			raw = `{"store_name": "Toko", "items": [
				{"name": "Teh", "unit_price": 5000},
				{"name": "Kopi", "quantity": 2, "total_price": 24000},
				{"name": "Gula", "quantity": null, "unit_price": null, "total_price": 8000}
			]}`
		})

		It("fills them from the fields present", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(receipt.Items).To(HaveLen(3))

			Expect(receipt.Items[0].Quantity).To(Equal(1))
			Expect(receipt.Items[0].TotalPrice).To(Equal(5000))

			Expect(receipt.Items[1].UnitPrice).To(Equal(12000))

			Expect(receipt.Items[2].Quantity).To(Equal(1))
			Expect(receipt.Items[2].UnitPrice).To(Equal(8000))
		})

		It("sums what it kept", func() {
			Expect(receipt.TotalAmount).To(Equal(37000))
		})
	})

	When("the store name is missing", func() {
		BeforeEach(func() {
			raw = `{"items": [{"name": "Teh", "total_price": 5000}]}`
		})

		It("falls back to the unknown store sentinel", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(receipt.StoreName).To(Equal("Unknown Store"))
		})
	})

	When("an item has no name or no amount", func() {
		BeforeEach(func() {
			raw = `{"store_name": "Toko", "items": [
				{"name": "", "total_price": 5000},
				{"name": "Teh"},
				{"name": "Kopi", "total_price": 12000}
			]}`
		})

		It("skips it and keeps the rest", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(receipt.Items).To(HaveLen(1))
			Expect(receipt.Items[0].Name).To(Equal("Kopi"))
		})
	})

	When("the response contains no JSON at all", func() {
		BeforeEach(func() {
			raw = "I could not read this receipt."
		})

		It("reports a malformed response carrying the raw text", func() {
			var malformed *MalformedResponseError
			Expect(errors.As(err, &malformed)).To(BeTrue())
			Expect(malformed.Raw).To(Equal(raw))
		})

		It("matches the no-items failure", func() {
			Expect(errors.Is(err, ErrNoItems)).To(BeTrue())
		})
	})

	When("the JSON is invalid", func() {
		BeforeEach(func() {
			raw = `{"store_name": "Toko", "items": [}`
		})

		It("reports a malformed response", func() {
			var malformed *MalformedResponseError
			Expect(errors.As(err, &malformed)).To(BeTrue())
			Expect(errors.Is(err, ErrNoItems)).To(BeTrue())
		})
	})

	When("the response validates but yields no usable items", func() {
		BeforeEach(func() {
			raw = `{"store_name": "Toko", "items": []}`
		})

		It("reports a malformed response, never an empty success", func() {
			Expect(receipt).To(BeNil())
			Expect(errors.Is(err, ErrNoItems)).To(BeTrue())
		})
	})
})
