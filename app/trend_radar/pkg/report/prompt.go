package report

import (
	"fmt"
	"strings"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
)

const summaryPromptTpl = `
The following is a list of recent news articles for the keyword '%s'.
Based on these articles, write a **one-page summary report** on the overall media trend in **English**.
(Include the general sentiment, key issues, and major related figures/companies. Format cleanly using Markdown.)
---
Article List:
%s
---
`

const trendPromptTpl = `
Compare the previous list of articles with the latest list for the keyword '%s' and analyze the **key shifts in media trends**.
Please structure the result using the following format:
## Major Trend Change Analysis
### 1. Key Shifts Summary
[Analysis content]
### 2. Newly Emerging or Rising Issues
* [Issue 1]
* [Issue 2]
### 3. Issues Decreasing in Importance
* [Issue 1]

* Previous Article List: %s
* Latest Article List: %s
`

// articleDigest 每篇文章一行：标题 (日期) - 摘要
func articleDigest(articles []model.Article) string {
	lines := make([]string, 0, len(articles))
	for _, a := range articles {
		lines = append(lines, fmt.Sprintf("- %s (%s) - %s", a.Title, a.Date(), a.TrailText))
	}
	return strings.Join(lines, "\n")
}

// titleDigest 只保留标题
func titleDigest(articles []model.Article) string {
	lines := make([]string, 0, len(articles))
	for _, a := range articles {
		lines = append(lines, "- "+a.Title)
	}
	return strings.Join(lines, "\n")
}

func summaryPrompt(keyword string, articles []model.Article) string {
	return fmt.Sprintf(summaryPromptTpl, keyword, articleDigest(articles))
}

func trendPrompt(keyword string, articles, previous []model.Article) string {
	return fmt.Sprintf(trendPromptTpl, keyword, titleDigest(previous), articleDigest(articles))
}
