// Package extract parses free-form OCR or clipboard text from payment-app
// screenshots into a structured best-effort payment record.
package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/daybook-dev/daybook/internal/model"
)

// LowConfidenceError reports that the rule cascade could not produce a
// trustworthy PaymentInfo. Partial carries whatever fields did match so the
// caller can hand them to a secondary parser (see Fallback) or a human.
type LowConfidenceError struct {
	Reason  string
	Partial model.PaymentInfo
}

func (e *LowConfidenceError) Error() string {
	return fmt.Sprintf("low confidence: %s", e.Reason)
}

// maxCounterpartyLen is the longest counterparty the extractor will accept,
// in runes. Longer matches are almost always OCR noise spanning lines.
const maxCounterpartyLen = 30

// Channel keyword sets, tested in order; the first set with a hit wins.
var (
	wechatKeywords = []string{"微信支付", "微信转账", "微信红包", "WeChat Pay", "微信"}
	alipayKeywords = []string{"支付宝", "Alipay", "花呗", "余额宝", "蚂蚁"}
	bankKeywords   = []string{
		"工商银行", "建设银行", "农业银行", "中国银行", "招商银行",
		"交通银行", "邮政储蓄", "储蓄卡", "信用卡", "银行卡", "网上银行",
	}
	// Slip-style documents: cloud pay receipts, e-invoices, bank receipts.
	cloudPayLiterals = []string{"云闪付", "UnionPay"}
	slipLiterals     = []string{"电子发票", "发票", "电子回单", "收据"}
)

// Amount patterns, tried in priority order. A pattern only wins if its
// capture parses to a positive decimal; otherwise the cascade falls through.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[¥￥$]\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`([0-9][0-9,]*(?:\.[0-9]{1,2})?)\s*元`),
	regexp.MustCompile(`金额[:：]?\s*[¥￥]?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`实[付收]款?[:：]?\s*[¥￥]?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`付款金额[:：]?\s*[¥￥]?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`订单金额[:：]?\s*[¥￥]?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
}

// Direction keyword sets. Scanned independently; exactly one hit decides.
var (
	expenseKeywords = []string{"付款成功", "支付成功", "付款", "支付", "消费", "支出", "扣款", "转账给", "购买"}
	incomeKeywords  = []string{"收款成功", "到账", "入账", "退款", "收入", "转入", "收到转账"}
)

// Counterparty patterns, tried in order. Each captures the name as group 1.
var counterpartyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:收款方|商户名称|店铺|商家)[:：]\s*([^\s,，。:：]+)`),
	regexp.MustCompile(`(?:付款给|转账给|向)\s*([^\s,，。:：]+?)(?:付款|转账|支付|$|\s)`),
	regexp.MustCompile(`(?:来自|收到)\s*([^\s,，。:：]+?)(?:的|$|\s)`),
}

// Timestamp patterns, tried in order. The matched text is kept verbatim.
var timestampPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}\s+\d{1,2}:\d{2}(?::\d{2})?`),
	regexp.MustCompile(`\d{4}/\d{1,2}/\d{1,2}\s+\d{1,2}:\d{2}(?::\d{2})?`),
	regexp.MustCompile(`\d{4}年\d{1,2}月\d{1,2}日\s*\d{1,2}:\d{2}(?::\d{2})?`),
}

// Extract runs the rule cascade over text. On success the returned
// PaymentInfo has a positive Amount and a Direction; Counterparty, Timestamp,
// and Channel are filled best-effort. On failure the error is a
// *LowConfidenceError carrying any partial fields found.
//
// Malformed input never panics: non-matching patterns and unparseable
// numbers are ordinary control flow and simply fall through.
func Extract(text string) (model.PaymentInfo, error) {
	info := model.PaymentInfo{RawText: text, Channel: model.ChannelUnknown}

	if strings.TrimSpace(text) == "" {
		return model.PaymentInfo{}, &LowConfidenceError{Reason: "no text", Partial: info}
	}

	info.Channel = detectChannel(text)

	amount, ok := extractAmount(text)
	info.Direction, info.DirectionAmbiguous = classifyDirection(text)
	info.Timestamp = extractTimestamp(text)

	if !ok {
		// Carry forward the partial fields so a secondary parser can use
		// them; counterparty is omitted since it is worthless without an
		// amount to attach it to.
		return model.PaymentInfo{}, &LowConfidenceError{Reason: "no amount matched", Partial: info}
	}

	info.Amount = amount
	info.Counterparty = extractCounterparty(text)
	return info, nil
}

func detectChannel(text string) model.Channel {
	switch {
	case containsAny(text, wechatKeywords):
		return model.ChannelWeChat
	case containsAny(text, alipayKeywords):
		return model.ChannelAlipay
	case containsAny(text, bankKeywords):
		return model.ChannelBank
	case containsAny(text, cloudPayLiterals):
		return model.ChannelCloudPay
	case containsAny(text, slipLiterals):
		// Invoices and slips come out of bank-style documents.
		return model.ChannelBank
	default:
		return model.ChannelUnknown
	}
}

func extractAmount(text string) (decimal.Decimal, bool) {
	for _, re := range amountPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
		if err != nil || !amount.IsPositive() {
			// Treated as "this pattern did not match".
			continue
		}
		return amount, true
	}
	return decimal.Decimal{}, false
}

// classifyDirection scans both keyword sets independently. Exactly one hit
// decides. Otherwise sign characters decide, and failing that the result
// defaults to expense. The fallback paths all report ambiguous=true.
func classifyDirection(text string) (model.Direction, bool) {
	expense := containsAny(text, expenseKeywords)
	income := containsAny(text, incomeKeywords)

	switch {
	case expense && !income:
		return model.DirectionExpense, false
	case income && !expense:
		return model.DirectionIncome, false
	}

	if strings.Contains(text, "-") {
		return model.DirectionExpense, true
	}
	if strings.Contains(text, "+") {
		return model.DirectionIncome, true
	}
	return model.DirectionExpense, true
}

func extractCounterparty(text string) string {
	for _, re := range counterpartyPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if name == "" || utf8.RuneCountInString(name) > maxCounterpartyLen {
			continue
		}
		return name
	}
	return ""
}

func extractTimestamp(text string) string {
	for _, re := range timestampPatterns {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
