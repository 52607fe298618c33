// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// AudioValidator - 音频提交文件校验工具

package naming

import "strings"

// ValidateScriptMatch checks a filename of the form
// <script_base_name>_<speaker_id>.wav against the known script base names.
// The candidate base name is everything before the first occurrence of
// _<speaker_id>; when that substring is absent the whole stripped name is the
// candidate, which then fails the membership check.
func ValidateScriptMatch(filename string, scriptBaseNames []string, speakerID string) Verdict {
	stripped := wavExtRe.ReplaceAllString(filename, "")

	candidate := stripped
	if i := strings.Index(stripped, "_"+speakerID); i >= 0 {
		candidate = stripped[:i]
	}

	known := false
	for _, name := range scriptBaseNames {
		if name == candidate {
			known = true
			break
		}
	}
	if !known {
		return Verdict{
			Status:         StatusFail,
			ExpectedFormat: ExpectedFormatUnavailable,
			Issues:         []string{"No matching script file found"},
		}
	}

	canonical := candidate + "_" + speakerID + ".wav"
	if filename != canonical {
		return Verdict{
			Status:         StatusFail,
			ExpectedFormat: canonical,
			Issues:         []string{"Incorrect filename for existing script"},
		}
	}

	return Verdict{Status: StatusPass, ExpectedFormat: canonical, Issues: []string{}}
}
