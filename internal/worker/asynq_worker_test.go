package worker

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rogtrack/rog-api/internal/gcss"
	"github.com/rogtrack/rog-api/internal/models"
	"github.com/rogtrack/rog-api/internal/provider"
	"github.com/rogtrack/rog-api/internal/queue"
	"github.com/rogtrack/rog-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupWorkerTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open database failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Part{}, &models.Document{}, &models.Status{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func newWorkerTestGCSSClient(t *testing.T, baseURL string, pagingMax int) *gcss.Client {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key failed: %v", err)
	}
	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "worker-test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate failed: %v", err)
	}

	dir := t.TempDir()
	certFile := filepath.Join(dir, "client.crt")
	keyFile := filepath.Join(dir, "client.key")
	if err := os.WriteFile(certFile, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600); err != nil {
		t.Fatalf("write cert failed: %v", err)
	}
	if err := os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}), 0o600); err != nil {
		t.Fatalf("write key failed: %v", err)
	}

	client, err := gcss.NewClient(gcss.Config{
		BaseURL:   baseURL,
		CertFile:  certFile,
		KeyFile:   keyFile,
		PagingMax: pagingMax,
	})
	if err != nil {
		t.Fatalf("new gcss client failed: %v", err)
	}
	return client
}

func docHistoryPage(remaining int, sdns ...string) string {
	var records strings.Builder
	for _, sdn := range sdns {
		fmt.Fprintf(&records, "<br2MerDocHistoryRecord><D>%s</D><E>D6T</E></br2MerDocHistoryRecord>", sdn)
	}
	return fmt.Sprintf(`<?xml version="1.0"?>`+
		`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"><soapenv:Body>`+
		`<processResponse><br2MerDocHistoryCollection>`+
		`<remaining-records>%d</remaining-records>%s`+
		`</br2MerDocHistoryCollection></processResponse>`+
		`</soapenv:Body></soapenv:Envelope>`, remaining, records.String())
}

func TestHandleGCSSDocHistoryPagination(t *testing.T) {
	pages := []string{
		docHistoryPage(1, "M2902812150001", "M2902812150002"),
		docHistoryPage(1, "M2902812150002", "M2902812160001"),
		docHistoryPage(0, "M2902812160002"),
	}
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests >= len(pages) {
			t.Errorf("unexpected extra page request %d", requests)
			w.Write([]byte(docHistoryPage(0)))
			return
		}
		w.Write([]byte(pages[requests]))
		requests++
	}))
	defer server.Close()

	db := setupWorkerTest(t)
	// One SDN already tracked locally; the pull must not duplicate it.
	if err := db.Create(&models.Document{SDN: "M2902812150001"}).Error; err != nil {
		t.Fatalf("seed document failed: %v", err)
	}

	consumer := NewConsumer(&provider.Container{
		DocumentRepo: repository.NewDocumentRepository(db),
		GCSSClient:   newWorkerTestGCSSClient(t, server.URL, 2),
	})

	task, err := queue.NewGCSSDocHistoryTask()
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handleGCSSDocHistory(context.Background(), task); err != nil {
		t.Fatalf("handle doc history failed: %v", err)
	}

	if requests != 3 {
		t.Fatalf("page requests want 3 got %d", requests)
	}
	var total int64
	if err := db.Model(&models.Document{}).Count(&total).Error; err != nil {
		t.Fatalf("count documents failed: %v", err)
	}
	if total != 4 {
		t.Fatalf("documents want 4 got %d", total)
	}
	for _, sdn := range []string{"M2902812150001", "M2902812150002", "M2902812160001", "M2902812160002"} {
		var n int64
		if err := db.Model(&models.Document{}).Where("sdn = ?", sdn).Count(&n).Error; err != nil {
			t.Fatalf("count %s failed: %v", sdn, err)
		}
		if n != 1 {
			t.Fatalf("sdn %s want 1 row got %d", sdn, n)
		}
	}
}

func TestHandleGCSSSubmitD6T(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Write([]byte(`<?xml version="1.0"?><soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"><soapenv:Body><initiateUncompressedResponse/></soapenv:Body></soapenv:Envelope>`))
	}))
	defer server.Close()

	db := setupWorkerTest(t)
	part := models.Part{NSN: "5330014654421", Nomen: "PACKING ASSORTMENT", UOI: "EA"}
	if err := db.Create(&part).Error; err != nil {
		t.Fatalf("seed part failed: %v", err)
	}
	document := models.Document{SDN: "M2902812150001", AAC: "M29028", PartID: &part.ID}
	if err := db.Create(&document).Error; err != nil {
		t.Fatalf("seed document failed: %v", err)
	}

	consumer := NewConsumer(&provider.Container{
		DocumentRepo: repository.NewDocumentRepository(db),
		GCSSClient:   newWorkerTestGCSSClient(t, server.URL, 0),
	})

	task, err := queue.NewGCSSSubmitD6TTask(queue.GCSSSubmitD6TPayload{DocumentIDs: []uint{document.ID, 9999}})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handleGCSSSubmitD6T(context.Background(), task); err != nil {
		t.Fatalf("handle submit failed: %v", err)
	}

	if gotBody == "" {
		t.Fatalf("no request reached the gateway")
	}
	for _, want := range []string{
		"&lt;shipmentReceiptsInCollection",
		"&lt;mRec&gt;",
		"&lt;sDN&gt;M2902812150001&lt;/sDN&gt;",
		"&lt;nIIN&gt;014654421&lt;/nIIN&gt;",
		"&lt;dIC&gt;D6T&lt;/dIC&gt;",
	} {
		if !strings.Contains(gotBody, want) {
			t.Fatalf("request missing %s:\n%s", want, gotBody)
		}
	}
	if strings.Contains(gotBody, "<mRec>") {
		t.Fatalf("payload must be escaped, found raw fragment")
	}
}

func TestHandleGCSSSubmitD6TWithoutClient(t *testing.T) {
	db := setupWorkerTest(t)
	consumer := NewConsumer(&provider.Container{
		DocumentRepo: repository.NewDocumentRepository(db),
	})

	task, err := queue.NewGCSSSubmitD6TTask(queue.GCSSSubmitD6TPayload{DocumentIDs: []uint{1}})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handleGCSSSubmitD6T(context.Background(), task); err != nil {
		t.Fatalf("missing client should be a no-op, got %v", err)
	}
}
