package problem

import (
	"fmt"
	"strings"
)

const systemPrompt = `你是一位中国资深小学一年级数学老师，为6-7岁的孩子出数学练习题。

要求：
1. 题目生动有趣，常结合生活场景（如：水果、小动物、文具）。
2. 选项必须包含4个，其中一个是正确答案，answer 必须与该选项的文字完全一致。
3. 如果是加减法，数值控制在20以内。如果是人民币，注意单位（元、角、分）。
4. 提供详细、通俗易懂的解析，用孩子能听懂的话。
5. 语言为中文。`

// buildUserMessage names the category by its catalog name when known and
// keeps the id so the response can echo it.
func buildUserMessage(category string) string {
	var b strings.Builder
	if c, ok := LookupCategory(category); ok {
		fmt.Fprintf(&b, "请根据目录 \"%s\"（%s）生成一道适合一年级学生的数学练习题。\n", c.Name, c.ID)
	} else {
		fmt.Fprintf(&b, "请根据目录 \"%s\" 生成一道适合一年级学生的数学练习题。\n", category)
	}
	if hint, ok := categoryHints[category]; ok {
		b.WriteString(hint)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

var categoryHints = map[string]string{
	CategoryAddition:    "加数和结果都不超过20。",
	CategorySubtraction: "被减数不超过20，结果不为负数。",
	CategoryShapes:      "围绕长方形、正方形、三角形、圆等平面图形或长方体、正方体、圆柱、球等立体图形。",
	CategoryMoney:       "使用元、角、分，注意1元=10角，1角=10分。",
	CategoryLogic:       "可以是找规律、排队、比较大小等简单推理。",
}
