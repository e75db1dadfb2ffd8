// Command seed populates a running instance with demo students, professors,
// courses, enrollments and grades through the public API. Useful for manual
// testing and demos against a fresh in-memory server.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

type payload map[string]interface{}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080/api/v1", "API base URL")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	students := []payload{
		{"id": "S001", "first_name": "Ana", "last_name": "Gomez", "birth_date": "2004-03-14", "program": "Computer Science", "enrollment_number": "EN-2022-001"},
		{"id": "S002", "first_name": "Bruno", "last_name": "Diaz", "birth_date": "2003-11-02", "program": "Computer Science", "enrollment_number": "EN-2021-045"},
		{"id": "S003", "first_name": "Carla", "last_name": "Vega", "birth_date": "2005-06-30", "program": "Mathematics", "enrollment_number": "EN-2023-012"},
	}
	professors := []payload{
		{"id": "P001", "first_name": "Luis", "last_name": "Marin", "birth_date": "1980-01-20", "department": "Computer Science", "contract": "FULL_TIME", "base_salary": 5200},
		{"id": "P002", "first_name": "Marta", "last_name": "Sol", "birth_date": "1975-09-08", "department": "Mathematics", "contract": "PART_TIME", "base_salary": 3100},
	}
	courses := []payload{
		{"code": "CS101", "name": "Programming I", "credits": 6},
		{"code": "CS201", "name": "Data Structures", "credits": 8},
		{"code": "MAT201", "name": "Calculus", "credits": 7},
	}
	assignments := map[string]string{"CS101": "P001", "CS201": "P001", "MAT201": "P002"}
	enrollments := []payload{
		{"student_id": "S001", "course_code": "CS101"},
		{"student_id": "S001", "course_code": "MAT201"},
		{"student_id": "S002", "course_code": "CS101"},
		{"student_id": "S002", "course_code": "CS201"},
		{"student_id": "S003", "course_code": "MAT201"},
	}
	grades := []payload{
		{"student_id": "S001", "course_code": "CS101", "grade": 8.5},
		{"student_id": "S001", "course_code": "MAT201", "grade": 9.0},
		{"student_id": "S002", "course_code": "CS101", "grade": 5.5},
		{"student_id": "S002", "course_code": "CS201", "grade": 6.0},
		{"student_id": "S003", "course_code": "MAT201", "grade": 7.0},
	}

	for _, p := range students {
		post(client, *baseURL+"/students", p)
	}
	for _, p := range professors {
		post(client, *baseURL+"/professors", p)
	}
	for _, p := range courses {
		post(client, *baseURL+"/courses", p)
	}
	for code, professorID := range assignments {
		put(client, fmt.Sprintf("%s/courses/%s/professor", *baseURL, code), payload{"professor_id": professorID})
	}
	for _, p := range enrollments {
		post(client, *baseURL+"/enrollments", p)
	}
	for _, p := range grades {
		post(client, *baseURL+"/enrollments/grades", p)
	}

	log.Printf("seeded %d students, %d professors, %d courses, %d enrollments, %d grades",
		len(students), len(professors), len(courses), len(enrollments), len(grades))
}

func post(client *http.Client, url string, body payload) {
	send(client, http.MethodPost, url, body)
}

func put(client *http.Client, url string, body payload) {
	send(client, http.MethodPut, url, body)
}

func send(client *http.Client, method, url string, body payload) {
	raw, err := json.Marshal(body)
	if err != nil {
		log.Fatalf("marshal %s: %v", url, err)
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(raw))
	if err != nil {
		log.Fatalf("build request %s: %v", url, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(resp.Body)
		log.Printf("%s %s -> %d: %s", method, url, resp.StatusCode, string(detail))
		return
	}
	log.Printf("%s %s -> %d", method, url, resp.StatusCode)
}
