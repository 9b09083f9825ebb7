package api

import (
	"chequeprinter/amount"

	"github.com/gin-gonic/gin"
)

// AmountHandler 金额大写
type AmountHandler struct{}

// NewAmountHandler 创建金额处理器
func NewAmountHandler() *AmountHandler {
	return &AmountHandler{}
}

// Words 金额转英文大写（印度计数法）
// @Summary 金额大写
// @Description 表单输入时实时显示，如 1500 -> One Thousand Five Hundred Rupees Only
// @Tags 金额
// @Produce json
// @Security BearerAuth
// @Param amount query string true "金额，如 1234.56"
// @Success 200 {object} Response "amount / words / formatted"
// @Failure 400 {object} Response "金额无效"
// @Router /api/v1/amount/words [get]
func (h *AmountHandler) Words(c *gin.Context) {
	d, err := amount.Parse(c.Query("amount"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	words, err := amount.ToWords(d)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, gin.H{
		"amount":    amount.Fixed(d.Round(2)),
		"words":     words,
		"formatted": amount.Format(d.Round(2)),
	})
}
