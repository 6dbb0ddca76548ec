/*
 * Copyright 2025 Olake By Datazip
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

type MessageType string

const (
	LogMessage     MessageType = "LOG"
	StatusMessage  MessageType = "STATUS"
	SummaryMessage MessageType = "SUMMARY"
	SpecMessage    MessageType = "SPEC"
)

type CheckStatus string

const (
	CheckSucceed CheckStatus = "SUCCEEDED"
	CheckFailed  CheckStatus = "FAILED"
)

type StatusRow struct {
	Status  CheckStatus `json:"status"`
	Message string      `json:"message,omitempty"`
}

// Message is what the commands report to the operator.
type Message struct {
	Type    MessageType `json:"type"`
	Status  *StatusRow  `json:"status,omitempty"`
	Summary *Summary    `json:"summary,omitempty"`
	Spec    any         `json:"spec,omitempty"`
}
