// Command-line stress test that simulates concurrent favorite / unfavorite
// operations against the API and produces CSV + HTML reports.
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"inkwell/config"

	"github.com/go-redis/redis/v8"
)

const baseURL = "http://127.0.0.1:8080/api/v1"

var client = &http.Client{Timeout: 10 * time.Second}

// 简单的账号凭证
type account struct {
	Username string
	Token    string
}

// favoriteResult 汇总单个读者 favorite 往返的行为，方便折叠到报告内。
type favoriteResult struct {
	Username     string
	FavoriteCode int
	UnfavCode    int
	ErrMessage   string
	Timestamp    time.Time
}

// ======================= 基本 HTTP helper =======================

// doRequest serializes an optional JSON body and sends the request with auth.
func doRequest(method, url string, body any, token string) (int, []byte, error) {
	var buf []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		buf = b
	}
	req, _ := http.NewRequest(method, url, bytes.NewBuffer(buf))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Device", "stress")
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data, nil
}

// ======================= 注册 / 登录 / 文章 Helpers =======================

// registerRaw issues a raw register request and returns status/data for assertions.
func registerRaw(email, username, password string) (int, []byte, error) {
	body := map[string]string{"email": email, "username": username, "password": password}
	return doRequest("POST", baseURL+"/users/register", body, "")
}

// loginUser logs the account in and returns its access token.
func loginUser(email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	status, data, err := doRequest("POST", baseURL+"/users/login", body, "")
	if err != nil {
		return "", err
	}
	if status != 200 {
		return "", fmt.Errorf("login status %d body=%s", status, string(data))
	}
	var res map[string]string
	if err := json.Unmarshal(data, &res); err != nil {
		return "", err
	}
	return res["access_token"], nil
}

// ensureAccount registers (idempotent) and logs in, returning the credentials.
func ensureAccount(username, password string) (account, error) {
	email := username + "@stress.local"
	status, _, err := registerRaw(email, username, password)
	if err != nil {
		return account{}, err
	}
	if status != 201 && status != 409 { // 409 表示已存在（可接受）
		return account{}, fmt.Errorf("register status %d", status)
	}
	token, err := loginUser(email, password)
	if err != nil {
		return account{}, err
	}
	return account{Username: username, Token: token}, nil
}

// createArticle creates one article for the author and returns its slug.
func createArticle(author account, title string, draft bool) (string, error) {
	body := map[string]any{"title": title, "body": "stress body", "isDraft": draft}
	status, data, err := doRequest("POST", baseURL+"/articles", body, author.Token)
	if err != nil {
		return "", err
	}
	if status != 201 {
		return "", fmt.Errorf("create article status %d body=%s", status, string(data))
	}
	var res struct {
		Article struct {
			Slug string `json:"slug"`
		} `json:"article"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return "", err
	}
	return res.Article.Slug, nil
}

// publishArticle flips the draft via the batch endpoint.
func publishArticle(author account, slug string) error {
	status, data, err := doRequest("POST", baseURL+"/articles/publish", map[string]any{"slugs": []string{slug}}, author.Token)
	if err != nil {
		return err
	}
	if status != 200 {
		return fmt.Errorf("publish status %d body=%s", status, string(data))
	}
	return nil
}

// articleStatus probes the article endpoint with an optional viewer token.
func articleStatus(slug, token string) int {
	status, _, err := doRequest("GET", baseURL+"/articles/"+slug, nil, token)
	if err != nil {
		return 0
	}
	return status
}

// favoritesCount reads the current snapshot count from the article endpoint.
func favoritesCount(slug, token string) (int, error) {
	status, data, err := doRequest("GET", baseURL+"/articles/"+slug, nil, token)
	if err != nil {
		return 0, err
	}
	if status != 200 {
		return 0, fmt.Errorf("get article status %d", status)
	}
	var res struct {
		Article struct {
			FavoritesCount int `json:"favoritesCount"`
		} `json:"article"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return 0, err
	}
	return res.Article.FavoritesCount, nil
}

// tryFavoriteRoundTrip: favorite -> duplicate favorite (期望 409) -> unfavorite
func tryFavoriteRoundTrip(reader account, slug string) favoriteResult {
	status, data, err := doRequest("POST", baseURL+"/articles/"+slug+"/favorite", nil, reader.Token)
	if err != nil {
		return favoriteResult{Username: reader.Username, ErrMessage: err.Error(), Timestamp: time.Now()}
	}
	res := favoriteResult{Username: reader.Username, FavoriteCode: status, Timestamp: time.Now()}
	if status != 200 {
		res.ErrMessage = fmt.Sprintf("favorite body=%s", string(data))
		return res
	}

	// 重复 favorite 必须得到 409，证明唯一约束兜底生效
	dupStatus, _, err := doRequest("POST", baseURL+"/articles/"+slug+"/favorite", nil, reader.Token)
	if err != nil {
		res.ErrMessage = err.Error()
		return res
	}
	if dupStatus != 409 {
		res.ErrMessage = fmt.Sprintf("duplicate favorite expected 409, got %d", dupStatus)
		return res
	}

	unfavStatus, _, err := doRequest("DELETE", baseURL+"/articles/"+slug+"/favorite", nil, reader.Token)
	if err != nil {
		res.ErrMessage = err.Error()
		return res
	}
	res.UnfavCode = unfavStatus
	if unfavStatus != 200 {
		res.ErrMessage = fmt.Sprintf("unfavorite expected 200, got %d", unfavStatus)
	}
	return res
}

// ======================= 基础功能连通性测试 =======================

// endpointSmokeTests exercises article visibility and publish with positive and negative cases.
func endpointSmokeTests() error {
	suffix := time.Now().UnixNano() % 1000000
	password := "SmokePwd123!"

	author, err := ensureAccount(fmt.Sprintf("smoke-author-%d", suffix), password)
	if err != nil {
		return fmt.Errorf("author setup failed: %w", err)
	}
	reader, err := ensureAccount(fmt.Sprintf("smoke-reader-%d", suffix), password)
	if err != nil {
		return fmt.Errorf("reader setup failed: %w", err)
	}

	// Draft creation succeeds and stays hidden from everyone but the author.
	slug, err := createArticle(author, fmt.Sprintf("Smoke Draft %d", suffix), true)
	if err != nil {
		return fmt.Errorf("create draft failed: %w", err)
	}
	if status := articleStatus(slug, ""); status != http.StatusNotFound {
		return fmt.Errorf("anonymous draft read expected 404, got %d", status)
	}
	if status := articleStatus(slug, reader.Token); status != http.StatusNotFound {
		return fmt.Errorf("reader draft read expected 404, got %d", status)
	}
	if status := articleStatus(slug, author.Token); status != http.StatusOK {
		return fmt.Errorf("author draft read expected 200, got %d", status)
	}

	// Publishing an unknown slug must reject the whole batch.
	status, _, err := doRequest("POST", baseURL+"/articles/publish",
		map[string]any{"slugs": []string{slug, "no-such-slug"}}, author.Token)
	if err != nil || status != http.StatusNotFound {
		return fmt.Errorf("publish (unknown slug) expected 404, got %d err=%v", status, err)
	}
	if status := articleStatus(slug, reader.Token); status != http.StatusNotFound {
		return fmt.Errorf("draft leaked after failed publish batch: status=%d", status)
	}

	// A clean publish makes the article public.
	if err := publishArticle(author, slug); err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}
	if status := articleStatus(slug, ""); status != http.StatusOK {
		return fmt.Errorf("anonymous read after publish expected 200, got %d", status)
	}

	// Duplicate title should collide on the slug.
	if _, err := createArticle(author, fmt.Sprintf("Smoke Draft %d", suffix), false); err == nil {
		return fmt.Errorf("duplicate title expected conflict, got success")
	}

	log.Println("endpoint smoke tests passed: draft visibility / publish / slug conflict verified")
	return nil
}

func sanityFlowTest(password string) error {
	suffix := time.Now().UnixNano() % 1000000
	author, err := ensureAccount(fmt.Sprintf("sanity-author-%d", suffix), password)
	if err != nil {
		return fmt.Errorf("sanity author failed: %w", err)
	}
	reader, err := ensureAccount(fmt.Sprintf("sanity-reader-%d", suffix), password)
	if err != nil {
		return fmt.Errorf("sanity reader failed: %w", err)
	}

	slug, err := createArticle(author, fmt.Sprintf("Sanity %d", suffix), false)
	if err != nil {
		return fmt.Errorf("sanity create failed: %w", err)
	}

	res := tryFavoriteRoundTrip(reader, slug)
	if res.ErrMessage != "" {
		return fmt.Errorf("sanity favorite round-trip failed: %s", res.ErrMessage)
	}

	// Follow 后 feed 内必须能看到这篇文章
	status, _, err := doRequest("POST", baseURL+"/profiles/"+author.Username+"/follow", nil, reader.Token)
	if err != nil || status != 200 {
		return fmt.Errorf("sanity follow failed: status=%d err=%v", status, err)
	}
	status, data, err := doRequest("GET", baseURL+"/articles/feed", nil, reader.Token)
	if err != nil || status != 200 {
		return fmt.Errorf("sanity feed failed: status=%d err=%v", status, err)
	}
	if !bytes.Contains(data, []byte(slug)) {
		return fmt.Errorf("sanity feed missing %s", slug)
	}
	return nil
}

// ======================= 并发测试与报告生成 =======================

// concurrentFavoriteTest orchestrates the whole run (setup -> race -> report).
func concurrentFavoriteTest(readerCount, maxConcurrent int, outCSV, outHTML string) error {
	suffix := time.Now().UnixNano() % 1000000
	password := "StressPwd123!"

	author, err := ensureAccount(fmt.Sprintf("stress-author-%d", suffix), password)
	if err != nil {
		return fmt.Errorf("author setup error: %v", err)
	}
	slug, err := createArticle(author, fmt.Sprintf("Stress Target %d", suffix), false)
	if err != nil {
		return fmt.Errorf("target article error: %v", err)
	}

	// 1) 并发准备读者账号
	type jobResult struct {
		Acc account
		Err error
	}
	jobs := make(chan string, readerCount)
	results := make(chan jobResult, readerCount)

	var wg sync.WaitGroup
	worker := func() {
		for name := range jobs {
			acc, err := ensureAccount(name, password)
			results <- jobResult{Acc: acc, Err: err}
		}
		wg.Done()
	}

	workers := maxConcurrent
	if workers < 1 {
		workers = 10
	}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go worker()
	}
	for i := 0; i < readerCount; i++ {
		jobs <- fmt.Sprintf("stress-reader-%d-%d", suffix, i)
	}
	close(jobs)
	wg.Wait()
	close(results)

	readers := make([]account, 0, readerCount)
	for res := range results {
		if res.Err != nil {
			log.Printf("[setup error] err=%v\n", res.Err)
			continue
		}
		readers = append(readers, res.Acc)
	}

	// 2) 并发执行 favorite 往返（每个读者各自一轮）
	var outWg sync.WaitGroup
	resCh := make(chan favoriteResult, len(readers))

	for _, r := range readers {
		outWg.Add(1)
		go func(reader account) {
			defer outWg.Done()
			resCh <- tryFavoriteRoundTrip(reader, slug)
		}(r)
	}
	outWg.Wait()
	close(resCh)

	// 3) 写 CSV 报告
	csvFile, err := os.Create(outCSV)
	if err != nil {
		return err
	}
	defer csvFile.Close()
	csvWriter := csv.NewWriter(csvFile)
	defer csvWriter.Flush()
	_ = csvWriter.Write([]string{"Username", "FavoriteCode", "UnfavCode", "ErrMessage", "Timestamp"})

	var allResults []favoriteResult
	for r := range resCh {
		_ = csvWriter.Write([]string{r.Username, fmt.Sprintf("%d", r.FavoriteCode), fmt.Sprintf("%d", r.UnfavCode), r.ErrMessage, r.Timestamp.Format(time.RFC3339)})
		allResults = append(allResults, r)
	}
	csvWriter.Flush()

	// 4) 每个往返都以 unfavorite 结束，快照计数必须归零
	count, err := favoritesCount(slug, author.Token)
	if err != nil {
		log.Printf("final count check error: %v", err)
	} else if count != 0 {
		log.Printf("[consistency error] favoritesCount after all round-trips: %d (want 0)", count)
	}

	// 5) 生成简单 HTML 报告
	if err := writeHTMLReport(outHTML, allResults); err != nil {
		log.Printf("write HTML report error: %v", err)
	}
	return nil
}

// writeHTMLReport renders a basic table so failures are easy to eyeball.
func writeHTMLReport(path string, results []favoriteResult) error {
	const tpl = `
<!doctype html>
<html>
<head><meta charset="utf-8"><title>Favorite Stress Report</title>
<style>
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 8px; text-align:left }
th { background: #f4f4f4; }
.success { color: green; }
.fail { color: red; }
</style>
</head>
<body>
<h2>Favorite Stress Report ({{ .GeneratedAt }})</h2>
<table>
<thead><tr><th>Username</th><th>FavoriteCode</th><th>UnfavCode</th><th>Error</th><th>Timestamp</th></tr></thead>
<tbody>
{{ range .Rows }}
<tr>
<td>{{ .Username }}</td>
<td>{{ .FavoriteCode }}</td>
<td>{{ .UnfavCode }}</td>
<td>{{ .ErrMessage }}</td>
<td>{{ .Timestamp }}</td>
</tr>
{{ end }}
</tbody>
</table>
</body>
</html>`

	data := struct {
		GeneratedAt string
		Rows        []favoriteResult
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Rows:        results,
	}

	t, err := template.New("report").Parse(tpl)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.Execute(f, data)
}

// ======================= main =======================

func main() {
	rdb := initRedis()
	readerCount := 20  // 模拟读者数量
	maxConcurrent := 5 // 最大并发 worker 数
	outCSV := "favorite_report.csv"
	outHTML := "favorite_report.html"

	if err := endpointSmokeTests(); err != nil {
		log.Fatalf("endpoint smoke tests failed: %v", err)
	}
	if err := sanityFlowTest("SanityPwd123!"); err != nil {
		log.Fatalf("basic flow verification failed: %v", err)
	}

	start := time.Now()
	if err := concurrentFavoriteTest(readerCount, maxConcurrent, outCSV, outHTML); err != nil {
		log.Fatalf("concurrent test failed: %v", err)
	}
	elapsed := time.Since(start)
	log.Printf("concurrent test finished in %s, CSV=%s HTML=%s\n", elapsed.String(), outCSV, outHTML)
	// 打印 Redis 状态
	keys, _ := rdb.Keys(rdb.Context(), "iw:*").Result()
	log.Printf("Redis keys after test: %v\n", keys)
	fmt.Println("All stress tests completed successfully!")
}

// 初始化 Redis 并清理测试数据
func initRedis() *redis.Client {
	config.InitConfig("../../")
	config.InitRedis()
	rdb := config.RedisClient
	rdb.FlushDB(rdb.Context())
	fmt.Println("Redis cleared for testing")
	return rdb
}
