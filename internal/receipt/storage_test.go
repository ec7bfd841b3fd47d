package receipt

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalStorage", func() {
	var (
		tmpDir  string
		storage *LocalStorage
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		var err error
		storage, err = NewLocalStorage(filepath.Join(tmpDir, "scans"))
		Expect(err).NotTo(HaveOccurred())
	})

	It("creates the storage directory", func() {
		info, err := os.Stat(filepath.Join(tmpDir, "scans"))
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsDir()).To(BeTrue())
	})

	Describe("Save", func() {
		It("writes the file and returns its name", func() {
			path, err := storage.Save("test-id_receipt.jpg", []byte("image data"))
			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(Equal("test-id_receipt.jpg"))

			data, err := os.ReadFile(filepath.Join(tmpDir, "scans", "test-id_receipt.jpg"))
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal([]byte("image data")))
		})
	})

	Describe("Get", func() {
		BeforeEach(func() {
			_, err := storage.Save("test-id_receipt.jpg", []byte("image data"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("reads a saved file back", func() {
			data, err := storage.Get("test-id_receipt.jpg")
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal([]byte("image data")))
		})

		When("the file does not exist", func() {
			It("returns an error", func() {
				_, err := storage.Get("missing.jpg")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			_, err := storage.Save("test-id_receipt.jpg", []byte("image data"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("removes the file", func() {
			Expect(storage.Delete("test-id_receipt.jpg")).To(Succeed())
			_, err := os.Stat(filepath.Join(tmpDir, "scans", "test-id_receipt.jpg"))
			Expect(os.IsNotExist(err)).To(BeTrue())
		})

		When("the file does not exist", func() {
			It("returns an error", func() {
				Expect(storage.Delete("missing.jpg")).NotTo(Succeed())
			})
		})
	})
})
